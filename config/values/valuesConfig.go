package values

import "time"

// FeedValues holds the tuning knobs of the feed assembler. Zero values are
// replaced with defaults by Normalize, so a partial yaml section is fine.
type FeedValues struct {
	// RandomShare is the fraction of a page drawn from the discovery pool,
	// the rest comes from the personalized pool.
	RandomShare float64 `yaml:"random-share"`
	// BufferMultiplier controls over-fetching to absorb dedup losses.
	BufferMultiplier float64 `yaml:"buffer-multiplier"`
	MaxPageSize      int     `yaml:"max-page-size"`
	// CandidatePool is the batch size ranked by the personalization scorer.
	CandidatePool int `yaml:"candidate-pool"`
	// ExcludeCap bounds the delivered-id set carried inside the cursor.
	ExcludeCap int `yaml:"exclude-cap"`
	// RotationWindowSeconds is the coarse time bucket for pool rotation.
	RotationWindowSeconds int `yaml:"rotation-window-seconds"`
}

type RakutenValues struct {
	GenreIDs        []string `yaml:"genre-ids"`
	PageLimit       int      `yaml:"page-limit"`
	HitsPerPage     int      `yaml:"hits-per-page"`
	SyncIntervalMin int      `yaml:"sync-interval-minutes"`
}

func DefaultFeedValues() FeedValues {
	return FeedValues{
		RandomShare:           0.7,
		BufferMultiplier:      3.0,
		MaxPageSize:           50,
		CandidatePool:         150,
		ExcludeCap:            2000,
		RotationWindowSeconds: 300,
	}
}

func (v *FeedValues) Normalize() {
	def := DefaultFeedValues()
	if v.RandomShare <= 0 || v.RandomShare > 1 {
		v.RandomShare = def.RandomShare
	}
	if v.BufferMultiplier < 1 {
		v.BufferMultiplier = def.BufferMultiplier
	}
	if v.MaxPageSize <= 0 {
		v.MaxPageSize = def.MaxPageSize
	}
	if v.CandidatePool <= 0 {
		v.CandidatePool = def.CandidatePool
	}
	if v.ExcludeCap <= 0 {
		v.ExcludeCap = def.ExcludeCap
	}
	if v.RotationWindowSeconds <= 0 {
		v.RotationWindowSeconds = def.RotationWindowSeconds
	}
}

func (v FeedValues) RotationWindow() time.Duration {
	return time.Duration(v.RotationWindowSeconds) * time.Second
}

func (v *RakutenValues) Normalize() {
	if v.PageLimit <= 0 {
		v.PageLimit = 10
	}
	if v.HitsPerPage <= 0 {
		v.HitsPerPage = 30
	}
	if v.SyncIntervalMin <= 0 {
		v.SyncIntervalMin = 360
	}
}
