package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"myMovieLab/business/catalog"
	"myMovieLab/business/clusterer"
	"myMovieLab/business/dataset"
	"myMovieLab/business/popularity"
	"myMovieLab/business/recommender"
	"myMovieLab/domain"
	"myMovieLab/pkg/logger"
	"myMovieLab/pkg/metrics"
)

// Bundle is one immutable generation of trained engines plus the derived
// cluster profiles. Handlers only ever read a bundle; a reload builds a
// fresh one and swaps the pointer.
type Bundle struct {
	Version     int64
	BuiltAt     time.Time
	Recommender *recommender.Engine
	Popularity  *popularity.Service
	Catalog     *catalog.Service
	Clusters    []domain.ClusterProfile
}

// Provider owns the current bundle. Reads are lock-free through an atomic
// pointer; rebuilds are serialized by a single-writer mutex.
type Provider struct {
	repo         dataset.Repository
	svdFactors   int
	numClusters  int
	artifactsDir string

	current atomic.Pointer[Bundle]
	version atomic.Int64
	rebuild sync.Mutex
}

func NewProvider(repo dataset.Repository, svdFactors, numClusters int, artifactsDir string) *Provider {
	return &Provider{
		repo:         repo,
		svdFactors:   svdFactors,
		numClusters:  numClusters,
		artifactsDir: artifactsDir,
	}
}

// Current returns the latest bundle, or nil before the first build.
func (p *Provider) Current() *Bundle {
	return p.current.Load()
}

// Rebuild loads a dataset snapshot, trains both engines, derives the
// cluster profiles and atomically publishes the new bundle. On failure the
// previous bundle keeps serving.
func (p *Provider) Rebuild(ctx context.Context) (*Bundle, error) {
	p.rebuild.Lock()
	defer p.rebuild.Unlock()

	start := time.Now()

	ds, err := p.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	rec, err := recommender.NewEngine(ds.Ratings, ds.Movies, ds.GenreNames, p.svdFactors)
	if err != nil {
		return nil, fmt.Errorf("build recommender: %w", err)
	}

	clus, err := clusterer.NewEngine(ds.Ratings, ds.Movies, ds.Users, ds.GenreNames, p.numClusters)
	if err != nil {
		return nil, fmt.Errorf("build clusterer: %w", err)
	}
	if _, err := clus.ClusterUsers(ctx); err != nil {
		return nil, fmt.Errorf("cluster users: %w", err)
	}

	demographics, genres, err := clus.AnalyzeClusters(ctx)
	if err != nil {
		return nil, fmt.Errorf("analyze clusters: %w", err)
	}

	if p.artifactsDir != "" {
		if err := clusterer.WriteArtifacts(p.artifactsDir, demographics, genres); err != nil {
			// reference output only, never fails a build
			logger.Warn("failed to write cluster artifacts", "error", err)
		}
	}

	bundle := &Bundle{
		Version:     p.version.Add(1),
		BuiltAt:     time.Now(),
		Recommender: rec,
		Popularity:  popularity.NewService(ds.Ratings, ds.Movies, ds.GenreNames),
		Catalog:     catalog.NewService(ds.Users, ds.Movies, ds.GenreNames),
		Clusters:    MergeProfiles(demographics, genres),
	}

	p.current.Store(bundle)

	metrics.EngineBuildDuration.Observe(time.Since(start).Seconds())
	metrics.EngineReloadsTotal.Inc()

	logger.Info("engine bundle built",
		"version", bundle.Version,
		"users", len(ds.Users),
		"movies", len(ds.Movies),
		"ratings", len(ds.Ratings),
		"svd_factors", rec.Rank(),
		"clusters", clus.NumClusters(),
		"took", time.Since(start),
	)

	return bundle, nil
}

// MergeProfiles joins the aligned demographic and genre summaries into the
// boundary view: genre preferences keep the dataset's genre order and only
// carry entries with a present mean above zero.
func MergeProfiles(demographics []domain.ClusterDemographics, genres []domain.ClusterGenres) []domain.ClusterProfile {
	profiles := make([]domain.ClusterProfile, 0, len(demographics))
	for i, d := range demographics {
		prefs := []domain.GenrePreference{}
		if i < len(genres) {
			for _, name := range genres[i].GenreOrder {
				mean := genres[i].GenreMeans[name]
				if mean == nil || *mean <= 0 {
					continue
				}
				prefs = append(prefs, domain.GenrePreference{Name: name, Value: *mean})
			}
		}

		profiles = append(profiles, domain.ClusterProfile{
			Cluster:          d.Cluster,
			NumUsers:         d.NumUsers,
			AgeMean:          d.AgeMean,
			AgeStd:           d.AgeStd,
			GenderDist:       d.GenderDist,
			TopOccupations:   d.TopOccupations,
			GenrePreferences: prefs,
		})
	}
	return profiles
}
