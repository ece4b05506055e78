package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-ingest-go/internal/config"
	"sentinel-ingest-go/internal/models"
	"sentinel-ingest-go/internal/repository"
	"sentinel-ingest-go/internal/services/facematch"
)

// ---- fakes ----

type fakeLedger struct {
	inserted  []models.Alert
	insertErr error
	existsErr error
}

func (l *fakeLedger) Insert(ctx context.Context, alert *models.Alert) error {
	if l.insertErr != nil {
		return l.insertErr
	}
	l.inserted = append(l.inserted, *alert)
	return nil
}

func (l *fakeLedger) ExistsUnknownSince(ctx context.Context, zoneID string, since time.Time) (bool, error) {
	if l.existsErr != nil {
		return false, l.existsErr
	}
	for _, a := range l.inserted {
		if a.ZoneID != nil && *a.ZoneID == zoneID &&
			a.Classification == models.ClassificationUnknown &&
			!a.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

type fakeRules struct {
	rules map[string]*models.ZoneRule
}

func (r *fakeRules) Get(ctx context.Context, zoneID string) (*models.ZoneRule, error) {
	if rule, ok := r.rules[zoneID]; ok {
		return rule, nil
	}
	return nil, repository.ErrNotFound
}

type fakeZones struct {
	zones map[string]*models.Zone
}

func (z *fakeZones) Get(ctx context.Context, zoneID string) (*models.Zone, error) {
	if zone, ok := z.zones[zoneID]; ok {
		return zone, nil
	}
	return nil, repository.ErrNotFound
}

type fakeMatcher struct {
	matches []facematch.Match
	err     error
	calls   int
}

func (m *fakeMatcher) Search(ctx context.Context, image []byte) ([]facematch.Match, error) {
	m.calls++
	return m.matches, m.err
}

type fakeStore struct {
	objects map[string][]byte
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.objects[key] = data
	return nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) Send(address, subject, body string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, subject)
	return nil
}

type fakePublisher struct {
	published []interface{}
}

func (p *fakePublisher) Publish(subject string, data interface{}) error {
	p.published = append(p.published, data)
	return nil
}

func (p *fakePublisher) Shutdown(ctx context.Context) error { return nil }

type fakeRetention struct {
	enforced []string
	err      error
}

func (r *fakeRetention) Enforce(ctx context.Context, accountID string) error {
	if r.err != nil {
		return r.err
	}
	r.enforced = append(r.enforced, accountID)
	return nil
}

// ---- harness ----

type harness struct {
	svc       *Service
	ledger    *fakeLedger
	rules     *fakeRules
	zones     *fakeZones
	matcher   *fakeMatcher
	store     *fakeStore
	notifier  *fakeNotifier
	publisher *fakePublisher
	retention *fakeRetention
}

func newHarness() *harness {
	cfg := &config.Config{
		ServiceID:            "test",
		DefaultCooldown:      5 * time.Minute,
		DefaultEventCost:     0.001,
		RetentionMaxAlerts:   100,
		MatcherTimeout:       time.Second,
		MatcherMinConfidence: 80,
		StorageTimeout:       time.Second,
		AlertsSubject:        "alerts.accepted",
		NotifyTo:             "owner@example.com",
	}

	h := &harness{
		ledger:    &fakeLedger{},
		rules:     &fakeRules{rules: make(map[string]*models.ZoneRule)},
		zones:     &fakeZones{zones: make(map[string]*models.Zone)},
		matcher:   &fakeMatcher{},
		store:     newFakeStore(),
		notifier:  &fakeNotifier{},
		publisher: &fakePublisher{},
		retention: &fakeRetention{},
	}

	h.svc = NewService(cfg, Deps{
		Ledger:    h.ledger,
		Rules:     h.rules,
		Zones:     h.zones,
		Matcher:   h.matcher,
		Store:     h.store,
		Notifier:  h.notifier,
		Publisher: h.publisher,
		Retention: h.retention,
	})
	h.svc.syncFollowUp = true
	return h
}

func strPtr(s string) *string { return &s }

var jpegImage = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x10, 0x20}

func request(zoneID *string) Request {
	return Request{
		AccountID: "acct-1",
		ZoneID:    zoneID,
		CameraID:  strPtr("cam-1"),
		Image:     jpegImage,
		Channel:   "email",
	}
}

// ---- tests ----

func TestIngestAcceptedUnknown(t *testing.T) {
	h := newHarness()

	result := h.svc.Ingest(context.Background(), request(nil))

	require.Equal(t, models.IngestAccepted, result.Status)
	assert.Equal(t, models.ClassificationUnknown, result.Classification)
	assert.Equal(t, 0.001, result.Cost)
	assert.NotEmpty(t, result.AlertID)

	require.Len(t, h.ledger.inserted, 1)
	alert := h.ledger.inserted[0]
	assert.Equal(t, result.AlertID, alert.ID)
	assert.False(t, alert.Protected)
	require.NotNil(t, alert.ObjectKey)
	assert.Contains(t, h.store.objects, *alert.ObjectKey)

	// Unknown events notify the owner and publish to the bus; the
	// account's retention runs after every accepted event
	assert.Len(t, h.notifier.sent, 1)
	assert.Len(t, h.publisher.published, 1)
	assert.Equal(t, []string{"acct-1"}, h.retention.enforced)
}

func TestIngestAcceptedKnownSkipsNotification(t *testing.T) {
	h := newHarness()
	h.matcher.matches = []facematch.Match{{PersonID: "p1", Confidence: 95}}

	result := h.svc.Ingest(context.Background(), request(nil))

	require.Equal(t, models.IngestAccepted, result.Status)
	assert.Equal(t, models.ClassificationKnown, result.Classification)
	assert.Empty(t, h.notifier.sent)
	assert.Len(t, h.publisher.published, 1)
}

func TestIngestMissingAccount(t *testing.T) {
	h := newHarness()

	result := h.svc.Ingest(context.Background(), Request{Image: jpegImage})

	assert.Equal(t, models.IngestFailed, result.Status)
	assert.Equal(t, "missing account id", result.Cause)
	assert.Empty(t, h.ledger.inserted)
	assert.Empty(t, h.store.objects)
	assert.Zero(t, h.matcher.calls)
}

func TestIngestLowConfidenceMatchIsUnknown(t *testing.T) {
	h := newHarness()
	h.matcher.matches = []facematch.Match{{PersonID: "p1", Confidence: 40}}

	result := h.svc.Ingest(context.Background(), request(nil))

	require.Equal(t, models.IngestAccepted, result.Status)
	assert.Equal(t, models.ClassificationUnknown, result.Classification)
}

func TestIngestCooldownSuppression(t *testing.T) {
	h := newHarness()
	zone := strPtr("zone-1")
	h.rules.rules["zone-1"] = &models.ZoneRule{
		ZoneID: "zone-1", RuleType: models.RuleTypeMixed, CooldownMinutes: 10,
	}
	// Prior unknown alert 9 minutes ago: inside the 10 minute window
	h.ledger.inserted = append(h.ledger.inserted, models.Alert{
		ZoneID:         zone,
		Classification: models.ClassificationUnknown,
		CreatedAt:      time.Now().Add(-9 * time.Minute),
	})

	result := h.svc.Ingest(context.Background(), request(zone))

	assert.Equal(t, models.IngestSkipped, result.Status)
	assert.Equal(t, models.SkipReasonCooldown, result.Reason)
	// The suppressed zone never pays for a match call, and nothing is
	// written
	assert.Zero(t, h.matcher.calls)
	assert.Empty(t, h.store.objects)
	assert.Len(t, h.ledger.inserted, 1)
}

func TestIngestCooldownExpired(t *testing.T) {
	h := newHarness()
	zone := strPtr("zone-1")
	h.rules.rules["zone-1"] = &models.ZoneRule{
		ZoneID: "zone-1", RuleType: models.RuleTypeMixed, CooldownMinutes: 10,
	}
	// Prior unknown alert 11 minutes ago: outside the window
	h.ledger.inserted = append(h.ledger.inserted, models.Alert{
		ID:             "prior",
		ZoneID:         zone,
		Classification: models.ClassificationUnknown,
		CreatedAt:      time.Now().Add(-11 * time.Minute),
	})

	result := h.svc.Ingest(context.Background(), request(zone))

	assert.Equal(t, models.IngestAccepted, result.Status)
	assert.Equal(t, 1, h.matcher.calls)
}

func TestIngestNoZoneNeverSuppressed(t *testing.T) {
	h := newHarness()
	// A recent unknown alert exists, but the request has no zone
	h.ledger.inserted = append(h.ledger.inserted, models.Alert{
		ZoneID:         strPtr("zone-1"),
		Classification: models.ClassificationUnknown,
		CreatedAt:      time.Now(),
	})

	result := h.svc.Ingest(context.Background(), request(nil))
	assert.Equal(t, models.IngestAccepted, result.Status)
}

func TestIngestPolicyKnownOnlyDropsUnknown(t *testing.T) {
	h := newHarness()
	zone := strPtr("zone-1")
	h.rules.rules["zone-1"] = &models.ZoneRule{
		ZoneID: "zone-1", RuleType: models.RuleTypeKnownOnly, CooldownMinutes: 10,
	}

	result := h.svc.Ingest(context.Background(), request(zone))

	assert.Equal(t, models.IngestSkipped, result.Status)
	assert.Equal(t, models.SkipReasonPolicy, result.Reason)
	// Policy rejection after the match: no storage write, no ledger
	// row, no notification
	assert.Equal(t, 1, h.matcher.calls)
	assert.Empty(t, h.store.objects)
	assert.Empty(t, h.ledger.inserted)
	assert.Empty(t, h.notifier.sent)
}

func TestIngestPolicyUnknownOnlyDropsKnown(t *testing.T) {
	h := newHarness()
	zone := strPtr("zone-1")
	h.rules.rules["zone-1"] = &models.ZoneRule{
		ZoneID: "zone-1", RuleType: models.RuleTypeUnknownOnly, CooldownMinutes: 10,
	}
	h.matcher.matches = []facematch.Match{{PersonID: "p1", Confidence: 95}}

	result := h.svc.Ingest(context.Background(), request(zone))

	assert.Equal(t, models.IngestSkipped, result.Status)
	assert.Equal(t, models.SkipReasonPolicy, result.Reason)
}

func TestIngestPermissiveDefaultWithoutRule(t *testing.T) {
	zone := strPtr("zone-without-rule")

	for _, matches := range [][]facematch.Match{
		nil,
		{{PersonID: "p1", Confidence: 95}},
	} {
		h := newHarness()
		h.matcher.matches = matches
		result := h.svc.Ingest(context.Background(), request(zone))
		assert.Equal(t, models.IngestAccepted, result.Status)
	}
}

func TestIngestMatcherFailureFailsOpen(t *testing.T) {
	h := newHarness()
	h.matcher.err = errors.New("matcher timeout")

	result := h.svc.Ingest(context.Background(), request(nil))

	// A matcher outage degrades to unknown, it never drops the event
	require.Equal(t, models.IngestAccepted, result.Status)
	assert.Equal(t, models.ClassificationUnknown, result.Classification)
	assert.Len(t, h.notifier.sent, 1)
}

func TestIngestStorageFailureIsFatal(t *testing.T) {
	h := newHarness()
	h.store.putErr = errors.New("bucket unavailable")

	result := h.svc.Ingest(context.Background(), request(nil))

	assert.Equal(t, models.IngestFailed, result.Status)
	assert.Equal(t, "storage write failed", result.Cause)
	// The dependency error never leaks into the result
	assert.NotContains(t, result.Cause, "bucket")
	assert.Empty(t, h.ledger.inserted)
	assert.Empty(t, h.notifier.sent)
}

func TestIngestLedgerFailureAfterStorage(t *testing.T) {
	h := newHarness()
	h.ledger.insertErr = errors.New("connection reset")

	result := h.svc.Ingest(context.Background(), request(nil))

	assert.Equal(t, models.IngestFailed, result.Status)
	// The blob was already written; the orphaned blob is accepted
	assert.Len(t, h.store.objects, 1)
	assert.Empty(t, h.notifier.sent)
}

func TestIngestRetentionFailureDoesNotFailEvent(t *testing.T) {
	h := newHarness()
	h.retention.err = errors.New("lock timeout")

	result := h.svc.Ingest(context.Background(), request(nil))

	assert.Equal(t, models.IngestAccepted, result.Status)
	assert.Len(t, h.ledger.inserted, 1)
}

func TestIngestNotifierFailureDoesNotFailEvent(t *testing.T) {
	h := newHarness()
	h.notifier.err = errors.New("smtp refused")

	result := h.svc.Ingest(context.Background(), request(nil))

	assert.Equal(t, models.IngestAccepted, result.Status)
}

func TestIngestResolvesZoneCost(t *testing.T) {
	h := newHarness()
	cost := 0.05
	h.zones.zones["zone-1"] = &models.Zone{ID: "zone-1", AccountID: "acct-1", Cost: &cost}

	result := h.svc.Ingest(context.Background(), request(strPtr("zone-1")))

	require.Equal(t, models.IngestAccepted, result.Status)
	assert.Equal(t, 0.05, result.Cost)
}

func TestIngestDefaultCostWhenZoneHasNone(t *testing.T) {
	h := newHarness()
	h.zones.zones["zone-1"] = &models.Zone{ID: "zone-1", AccountID: "acct-1"}

	result := h.svc.Ingest(context.Background(), request(strPtr("zone-1")))

	require.Equal(t, models.IngestAccepted, result.Status)
	assert.Equal(t, 0.001, result.Cost)
}

func TestIngestBurstScenario(t *testing.T) {
	// unknown_only rule with 5 minute cooldown; two unknown snapshots
	// a minute apart: first accepted, second suppressed
	h := newHarness()
	zone := strPtr("zone-1")
	h.rules.rules["zone-1"] = &models.ZoneRule{
		ZoneID: "zone-1", RuleType: models.RuleTypeUnknownOnly, CooldownMinutes: 5,
	}

	first := h.svc.Ingest(context.Background(), request(zone))
	require.Equal(t, models.IngestAccepted, first.Status)

	second := h.svc.Ingest(context.Background(), request(zone))
	assert.Equal(t, models.IngestSkipped, second.Status)
	assert.Equal(t, models.SkipReasonCooldown, second.Reason)
}

func TestIngestCooldownCheckedBeforeClassification(t *testing.T) {
	// The cooldown window is evaluated speculatively against the
	// unknown candidate type even when the snapshot would classify as
	// known
	h := newHarness()
	zone := strPtr("zone-1")
	h.matcher.matches = []facematch.Match{{PersonID: "p1", Confidence: 99}}
	h.ledger.inserted = append(h.ledger.inserted, models.Alert{
		ZoneID:         zone,
		Classification: models.ClassificationUnknown,
		CreatedAt:      time.Now().Add(-time.Minute),
	})

	result := h.svc.Ingest(context.Background(), request(zone))

	assert.Equal(t, models.IngestSkipped, result.Status)
	assert.Equal(t, models.SkipReasonCooldown, result.Reason)
	assert.Zero(t, h.matcher.calls)
}

func TestShutdownWaitsForFollowUp(t *testing.T) {
	h := newHarness()
	h.svc.syncFollowUp = false

	result := h.svc.Ingest(context.Background(), request(nil))
	require.Equal(t, models.IngestAccepted, result.Status)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, h.svc.Shutdown(ctx))

	assert.Equal(t, []string{"acct-1"}, h.retention.enforced)
	assert.Len(t, h.publisher.published, 1)
}
