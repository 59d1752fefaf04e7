package script

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shorts-script-api/internal/application/credential"
	"shorts-script-api/internal/config"
	"shorts-script-api/internal/domain/entity"
	"shorts-script-api/internal/domain/repository"
	apperrors "shorts-script-api/pkg/errors"
)

const testScript = "क्या आप जानते हैं कि स्पेस में नाखून खतरनाक हो सकते हैं? ज़ीरो ग्रैविटी में कटे नाखून हवा में तैरते हैं। अब सोचिए, कितनी बड़ी मुसीबत!"

// ---- fakes ----

type fakePoolRepo struct {
	creds []*entity.Credential
}

func (f *fakePoolRepo) Create(_ context.Context, cred *entity.Credential) error {
	f.creds = append(f.creds, cred)
	return nil
}

func (f *fakePoolRepo) Delete(_ context.Context, value string) (bool, error) {
	for i, c := range f.creds {
		if c.Value == value {
			f.creds = append(f.creds[:i], f.creds[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePoolRepo) List(_ context.Context, _ entity.CredentialKind) ([]*entity.Credential, error) {
	return f.creds, nil
}

func (f *fakePoolRepo) ListActive(_ context.Context, kind entity.CredentialKind) ([]*entity.Credential, error) {
	var out []*entity.Credential
	for _, c := range f.creds {
		if c.Kind == kind && c.Active {
			// 与真实仓储一致：返回独立副本，不与存储记录共享指针
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UsageCount < out[j].UsageCount
	})
	return out, nil
}

func (f *fakePoolRepo) CountActive(_ context.Context, kind entity.CredentialKind) (int64, error) {
	var n int64
	for _, c := range f.creds {
		if c.Kind == kind && c.Active {
			n++
		}
	}
	return n, nil
}

func (f *fakePoolRepo) IncrementUsage(_ context.Context, value string) error {
	now := time.Now()
	for _, c := range f.creds {
		if c.Value == value {
			c.UsageCount++
			c.LastUsed = &now
		}
	}
	return nil
}

// fakeUpstream 按凭证值决定成功或失败
type fakeUpstream struct {
	failWith  map[string]error
	response  string
	callCount int
	usedCreds []string
}

func (u *fakeUpstream) Generate(_ context.Context, cred *entity.Credential, _ string) (string, error) {
	u.callCount++
	u.usedCreds = append(u.usedCreds, cred.Value)
	if err, ok := u.failWith[cred.Value]; ok {
		return "", err
	}
	return u.response, nil
}

type fakeTransactor struct{}

func (fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeScriptRepo struct {
	created []*entity.GeneratedScript
	err     error
}

func (f *fakeScriptRepo) Create(_ context.Context, script *entity.GeneratedScript) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, script)
	return nil
}

func (f *fakeScriptRepo) GetByID(_ context.Context, id string) (*entity.GeneratedScript, error) {
	for _, s := range f.created {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeScriptRepo) ListByUser(_ context.Context, _ string, p repository.Pagination) (*repository.PagedResult[*entity.GeneratedScript], error) {
	return repository.NewPagedResult(f.created, int64(len(f.created)), p), nil
}

type fakeSessionRepo struct {
	sessions   map[string]*entity.UserSession
	increments int
}

func (f *fakeSessionRepo) Upsert(_ context.Context, session *entity.UserSession) error {
	if f.sessions == nil {
		f.sessions = make(map[string]*entity.UserSession)
	}
	if existing, ok := f.sessions[session.UserID]; ok {
		existing.Username = session.Username
		existing.LastActivity = session.LastActivity
		return nil
	}
	f.sessions[session.UserID] = session
	return nil
}

func (f *fakeSessionRepo) GetByUserID(_ context.Context, userID string) (*entity.UserSession, error) {
	if s, ok := f.sessions[userID]; ok {
		return s, nil
	}
	return nil, nil
}

func (f *fakeSessionRepo) IncrementScriptCount(_ context.Context, userID string) error {
	f.increments++
	if s, ok := f.sessions[userID]; ok {
		s.ScriptCount++
	}
	return nil
}

type fakeExampleRepo struct {
	examples []*entity.ReferenceExample
}

func (f *fakeExampleRepo) Create(_ context.Context, ex *entity.ReferenceExample) error {
	f.examples = append(f.examples, ex)
	return nil
}

func (f *fakeExampleRepo) ListActive(_ context.Context) ([]*entity.ReferenceExample, error) {
	return f.examples, nil
}

func (f *fakeExampleRepo) ListRecent(_ context.Context, limit int) ([]*entity.ReferenceExample, error) {
	if len(f.examples) > limit {
		return f.examples[len(f.examples)-limit:], nil
	}
	return f.examples, nil
}

// ---- helpers ----

type pipelineFixture struct {
	pipeline *Pipeline
	upstream *fakeUpstream
	scripts  *fakeScriptRepo
	sessions *fakeSessionRepo
}

func newPipelineFixture(t *testing.T, creds []*entity.Credential, upstream *fakeUpstream) *pipelineFixture {
	t.Helper()

	poolRepo := &fakePoolRepo{creds: creds}
	pool := credential.NewPool(poolRepo, entity.CredentialKindGemini)

	cfg := &config.GenerationConfig{
		MinWords:    130,
		MaxWords:    160,
		MaxExamples: 5,
		UnitDelay:   time.Millisecond,
	}

	scripts := &fakeScriptRepo{}
	sessions := &fakeSessionRepo{}
	sink := NewSink(fakeTransactor{}, scripts, sessions)

	pipeline := NewPipeline(pool, NewPromptBuilder(cfg), upstream, sink, &fakeExampleRepo{}, nil, cfg)
	return &pipelineFixture{
		pipeline: pipeline,
		upstream: upstream,
		scripts:  scripts,
		sessions: sessions,
	}
}

func testCred(suffix string, usage int64) *entity.Credential {
	return &entity.Credential{
		Value:      "AIzaTestCredential000000000000" + suffix,
		Kind:       entity.CredentialKindGemini,
		Active:     true,
		UsageCount: usage,
		CreatedAt:  time.Now(),
	}
}

func collect(ch <-chan Event) []Event {
	var events []Event
	for ev := range ch {
		events = append(events, ev)
	}
	return events
}

// ---- tests ----

func TestPipelineEventOrdering(t *testing.T) {
	fx := newPipelineFixture(t, []*entity.Credential{testCred("A", 0)},
		&fakeUpstream{response: testScript})

	events := collect(fx.pipeline.Run(context.Background(), &GenerateRequest{
		UserID: "u1", Username: "tester", Topic: "स्पेस",
	}))

	require.GreaterOrEqual(t, len(events), 3)
	assert.Equal(t, EventMetadata, events[0].Type)
	assert.Equal(t, EventComplete, events[len(events)-1].Type)

	units := events[1 : len(events)-1]
	require.Equal(t, events[0].Metadata.TotalSentences, len(units))

	var contents []string
	for i, ev := range units {
		require.Equal(t, EventUnit, ev.Type)
		assert.Equal(t, i, ev.Unit.Index)
		assert.Equal(t, i == len(units)-1, ev.Unit.IsLast)
		contents = append(contents, ev.Unit.Content)
	}

	// 拼接还原原文（空白归一化）
	rejoined := strings.Join(strings.Fields(strings.Join(contents, " ")), " ")
	assert.Equal(t, strings.Join(strings.Fields(testScript), " "), rejoined)
	assert.Equal(t, testScript, events[len(events)-1].Complete.FullScript)
}

func TestPipelinePersistsScriptAndSessionCount(t *testing.T) {
	fx := newPipelineFixture(t, []*entity.Credential{testCred("A", 0)},
		&fakeUpstream{response: testScript})

	events := collect(fx.pipeline.Run(context.Background(), &GenerateRequest{
		UserID: "u1", Username: "tester", Topic: "स्पेस",
	}))

	complete := events[len(events)-1]
	require.Equal(t, EventComplete, complete.Type)
	assert.Empty(t, complete.Complete.Warning)
	assert.NotEmpty(t, complete.Complete.ScriptID)

	require.Len(t, fx.scripts.created, 1)
	assert.Equal(t, "u1", fx.scripts.created[0].UserID)
	assert.Equal(t, entity.CountWords(testScript), fx.scripts.created[0].WordCount)
	assert.Equal(t, int64(1), fx.sessions.sessions["u1"].ScriptCount)
}

func TestPipelineFailsOverOnTransientError(t *testing.T) {
	credA := testCred("A", 0)
	credB := testCred("B", 1)
	upstream := &fakeUpstream{
		response: testScript,
		failWith: map[string]error{
			credA.Value: apperrors.New(apperrors.CodeUpstreamTransient, "rate limit exceeded"),
		},
	}
	fx := newPipelineFixture(t, []*entity.Credential{credA, credB}, upstream)

	events := collect(fx.pipeline.Run(context.Background(), &GenerateRequest{
		UserID: "u1", Topic: "gravity",
	}))

	complete := events[len(events)-1]
	require.Equal(t, EventComplete, complete.Type)
	assert.Equal(t, credB.Masked(), complete.Complete.CredentialUsed)
	assert.Equal(t, []string{credA.Value, credB.Value}, upstream.usedCreds)
}

func TestPipelineBoundsTransientRetries(t *testing.T) {
	credA := testCred("A", 0)
	credB := testCred("B", 0)
	transient := apperrors.New(apperrors.CodeUpstreamTransient, "quota exhausted")
	upstream := &fakeUpstream{
		failWith: map[string]error{
			credA.Value: transient,
			credB.Value: transient,
		},
	}
	fx := newPipelineFixture(t, []*entity.Credential{credA, credB}, upstream)

	events := collect(fx.pipeline.Run(context.Background(), &GenerateRequest{UserID: "u1"}))

	// 两个凭证各试一次后终止，不允许第三次
	assert.Equal(t, 2, upstream.callCount)
	require.Len(t, events, 1)
	assert.Equal(t, EventError, events[0].Type)
	assert.Equal(t, string(apperrors.CodeNoCredentials), events[0].Error.Code)
}

func TestPipelineSurfacesFatalErrorImmediately(t *testing.T) {
	credA := testCred("A", 0)
	credB := testCred("B", 0)
	upstream := &fakeUpstream{
		response: testScript,
		failWith: map[string]error{
			credA.Value: apperrors.New(apperrors.CodeUpstreamFatal, "invalid request"),
		},
	}
	fx := newPipelineFixture(t, []*entity.Credential{credA, credB}, upstream)

	events := collect(fx.pipeline.Run(context.Background(), &GenerateRequest{UserID: "u1"}))

	assert.Equal(t, 1, upstream.callCount)
	require.Len(t, events, 1)
	assert.Equal(t, EventError, events[0].Type)
	assert.Equal(t, string(apperrors.CodeUpstreamFatal), events[0].Error.Code)
}

func TestPipelineNoCredentials(t *testing.T) {
	fx := newPipelineFixture(t, nil, &fakeUpstream{response: testScript})

	events := collect(fx.pipeline.Run(context.Background(), &GenerateRequest{UserID: "u1"}))

	require.Len(t, events, 1)
	assert.Equal(t, EventError, events[0].Type)
	assert.Equal(t, string(apperrors.CodeNoCredentials), events[0].Error.Code)
	assert.Zero(t, fx.upstream.callCount)
}

func TestPipelineCompletesWithWarningOnPersistenceFailure(t *testing.T) {
	fx := newPipelineFixture(t, []*entity.Credential{testCred("A", 0)},
		&fakeUpstream{response: testScript})
	fx.scripts.err = assert.AnError

	events := collect(fx.pipeline.Run(context.Background(), &GenerateRequest{
		UserID: "u1", Topic: "gravity",
	}))

	complete := events[len(events)-1]
	require.Equal(t, EventComplete, complete.Type)
	assert.NotEmpty(t, complete.Complete.Warning)
	assert.Empty(t, complete.Complete.ScriptID)
	assert.Equal(t, testScript, complete.Complete.FullScript)
}

func TestPipelineCancellationStopsStream(t *testing.T) {
	fx := newPipelineFixture(t, []*entity.Credential{testCred("A", 0)},
		&fakeUpstream{response: testScript})
	fx.pipeline.unitDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	ch := fx.pipeline.Run(ctx, &GenerateRequest{UserID: "u1"})

	// 读取 metadata 与首个句子后取消
	<-ch
	<-ch
	cancel()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("pipeline did not stop after cancellation")
		}
	}
}
