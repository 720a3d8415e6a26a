package validate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokscout/internal/domain"
)

type memStore struct {
	prior   map[string]domain.Resolution
	saved   []domain.Resolution
	loadErr error
	saveErr error
}

func (m *memStore) LoadResolutions() (map[string]domain.Resolution, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.prior == nil {
		return map[string]domain.Resolution{}, nil
	}
	return m.prior, nil
}

func (m *memStore) SaveResolutions(resolutions []domain.Resolution) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = resolutions
	return nil
}

type stubResolver struct {
	statuses map[string]domain.ChannelStatus
	calls    []string
}

func (s *stubResolver) Resolve(ctx context.Context, t domain.Target) domain.Resolution {
	s.calls = append(s.calls, t.Username)
	status := s.statuses[t.Username]
	if status == "" {
		status = domain.StatusUndefined
	}
	return domain.Resolution{
		Username:   t.Username,
		ProfileURL: t.ProfileURL,
		Status:     status,
		CheckedAt:  time.Now(),
	}
}

type capturingPublisher struct {
	published []domain.Resolution
	err       error
}

func (p *capturingPublisher) PublishResolution(ctx context.Context, res domain.Resolution) error {
	p.published = append(p.published, res)
	return p.err
}

func orchestratorFor(r Resolver, s Store, p Publisher) *Orchestrator {
	return NewOrchestrator(r, s, p, time.Millisecond, nil)
}

func targets(usernames ...string) []domain.Target {
	ts := make([]domain.Target, 0, len(usernames))
	for _, u := range usernames {
		ts = append(ts, domain.Target{Username: u, ProfileURL: domain.ProfileURLFor(u)})
	}
	return ts
}

func TestRunSkipsStoredResolutions(t *testing.T) {
	// "X" was resolved in a prior run: zero resolver calls for it and its
	// stored status survives unchanged. The lookup is case-insensitive.
	store := &memStore{prior: map[string]domain.Resolution{
		"x": {Username: "x", Status: domain.StatusValid, Message: "kept"},
	}}
	resolver := &stubResolver{statuses: map[string]domain.ChannelStatus{
		"fresh": domain.StatusInvalid,
	}}

	summary, err := orchestratorFor(resolver, store, nil).Run(context.Background(), targets("X", "fresh"))

	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, resolver.calls)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Processed)

	byUser := map[string]domain.Resolution{}
	for _, r := range store.saved {
		byUser[r.Username] = r
	}
	assert.Equal(t, domain.StatusValid, byUser["x"].Status)
	assert.Equal(t, "kept", byUser["x"].Message)
}

func TestRunSortsReportByStatus(t *testing.T) {
	// Statuses [invalid, valid, undefined, valid] come out as
	// [valid, valid, undefined, invalid], input order kept within groups.
	resolver := &stubResolver{statuses: map[string]domain.ChannelStatus{
		"a": domain.StatusInvalid,
		"b": domain.StatusValid,
		"c": domain.StatusUndefined,
		"d": domain.StatusValid,
	}}
	store := &memStore{}

	_, err := orchestratorFor(resolver, store, nil).Run(context.Background(), targets("a", "b", "c", "d"))

	require.NoError(t, err)
	require.Len(t, store.saved, 4)

	order := make([]string, 0, 4)
	for _, r := range store.saved {
		order = append(order, r.Username)
	}
	assert.Equal(t, []string{"b", "d", "c", "a"}, order)
}

func TestRunEmptyBatchFails(t *testing.T) {
	store := &memStore{}
	resolver := &stubResolver{}

	_, err := orchestratorFor(resolver, store, nil).Run(context.Background(), nil)

	require.Error(t, err)
	assert.Empty(t, resolver.calls)
}

func TestRunAbortsWhenStoreUnreadable(t *testing.T) {
	store := &memStore{loadErr: errors.New("permission denied")}
	resolver := &stubResolver{}

	_, err := orchestratorFor(resolver, store, nil).Run(context.Background(), targets("a"))

	require.Error(t, err)
	assert.Empty(t, resolver.calls)
	assert.Nil(t, store.saved)
}

func TestRunReportsSaveFailure(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	resolver := &stubResolver{}

	_, err := orchestratorFor(resolver, store, nil).Run(context.Background(), targets("a"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRunKeepsRecordsFromEarlierRuns(t *testing.T) {
	store := &memStore{prior: map[string]domain.Resolution{
		"old": {Username: "old", Status: domain.StatusInvalid},
	}}
	resolver := &stubResolver{statuses: map[string]domain.ChannelStatus{
		"new": domain.StatusValid,
	}}

	_, err := orchestratorFor(resolver, store, nil).Run(context.Background(), targets("new"))

	require.NoError(t, err)
	require.Len(t, store.saved, 2)
	assert.Equal(t, "new", store.saved[0].Username)
	assert.Equal(t, "old", store.saved[1].Username)
}

func TestRunPublishesFreshResolutionsOnly(t *testing.T) {
	store := &memStore{prior: map[string]domain.Resolution{
		"seen": {Username: "seen", Status: domain.StatusValid},
	}}
	resolver := &stubResolver{statuses: map[string]domain.ChannelStatus{
		"new": domain.StatusValid,
	}}
	publisher := &capturingPublisher{}

	_, err := orchestratorFor(resolver, store, publisher).Run(context.Background(), targets("seen", "new"))

	require.NoError(t, err)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, "new", publisher.published[0].Username)
}

func TestRunSurvivesPublishFailure(t *testing.T) {
	store := &memStore{}
	resolver := &stubResolver{statuses: map[string]domain.ChannelStatus{
		"a": domain.StatusValid,
	}}
	publisher := &capturingPublisher{err: errors.New("broker down")}

	summary, err := orchestratorFor(resolver, store, publisher).Run(context.Background(), targets("a"))

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Len(t, store.saved, 1)
}

func TestMergeFreshWins(t *testing.T) {
	prior := map[string]domain.Resolution{
		"a": {Username: "a", Status: domain.StatusUndefined},
		"b": {Username: "b", Status: domain.StatusValid},
	}
	fresh := map[string]domain.Resolution{
		"a": {Username: "a", Status: domain.StatusValid},
		"c": {Username: "c", Status: domain.StatusInvalid},
	}

	merged := Merge(prior, fresh)

	assert.Len(t, merged, 3)
	assert.Equal(t, domain.StatusValid, merged["a"].Status)
	assert.Equal(t, domain.StatusValid, merged["b"].Status)
	assert.Equal(t, domain.StatusInvalid, merged["c"].Status)

	// Merge is pure: inputs stay untouched.
	assert.Equal(t, domain.StatusUndefined, prior["a"].Status)
	assert.Len(t, fresh, 2)
}

func TestSortByStatusStable(t *testing.T) {
	report := []domain.Resolution{
		{Username: "inv1", Status: domain.StatusInvalid},
		{Username: "val1", Status: domain.StatusValid},
		{Username: "und1", Status: domain.StatusUndefined},
		{Username: "val2", Status: domain.StatusValid},
	}

	SortByStatus(report)

	order := make([]string, 0, len(report))
	for _, r := range report {
		order = append(order, r.Username)
	}
	assert.Equal(t, []string{"val1", "val2", "und1", "inv1"}, order)
}
