package api

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit_tracker/internal/domain"
)

func optionPath(id uint) string {
	return "/api/v1/frequency-options/" + strconv.FormatUint(uint64(id), 10)
}

func TestListFrequencyOptions(t *testing.T) {
	s := newTestServer(t, nil)
	_, token := s.user(t, "alice")

	w := s.do(t, http.MethodGet, "/api/v1/frequency-options", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	options := decode[[]domain.FrequencyOption](t, w)
	assert.Len(t, options, len(domain.DefaultFrequencyNames))
}

func TestFrequencyOptionLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	_, alice := s.user(t, "alice")
	_, bob := s.user(t, "bob")

	w := s.do(t, http.MethodPost, "/api/v1/frequency-options", alice, map[string]any{"name": "Weekdays", "description": "Mon-Fri"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	option := decode[domain.FrequencyOption](t, w)
	assert.False(t, option.IsDefault)

	dup := s.do(t, http.MethodPost, "/api/v1/frequency-options", bob, map[string]any{"name": "Weekdays"})
	assert.Equal(t, http.StatusConflict, dup.Code)

	bobs := decode[[]domain.FrequencyOption](t, s.do(t, http.MethodGet, "/api/v1/frequency-options", bob, nil))
	assert.Len(t, bobs, len(domain.DefaultFrequencyNames))

	habit := pushups()
	habit["targetFrequencyId"] = option.ID
	created := s.do(t, http.MethodPost, "/api/v1/habits", alice, habit)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, optionPath(option.ID), bob, nil).Code)
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodDelete, optionPath(option.ID), alice, nil).Code)

	h := decode[domain.Habit](t, created)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, habitPath(h.ID), alice, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, optionPath(option.ID), alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, optionPath(option.ID), alice, nil).Code)
}

func TestDeleteDefaultFrequencyOption(t *testing.T) {
	s := newTestServer(t, nil)
	_, token := s.user(t, "alice")

	w := s.do(t, http.MethodDelete, optionPath(1), token, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden", decode[errorBody](t, w).Code)
}

func TestCreateFrequencyOption_Rejections(t *testing.T) {
	s := newTestServer(t, nil)
	_, token := s.user(t, "alice")

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/frequency-options", token, map[string]any{"name": " "}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/frequency-options", token, `{"name":`).Code)
}

func warnings(hook *test.Hook) []string {
	var out []string
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			out = append(out, e.Message)
		}
	}
	return out
}

func TestFrequencyOptions_CacheFailuresAreLogged(t *testing.T) {
	mr, rdb := newTestRedis(t)
	s := newTestServer(t, rdb)
	_, token := s.user(t, "alice")
	hook := test.NewGlobal()
	t.Cleanup(hook.Reset)
	mr.Close()

	w := s.do(t, http.MethodGet, "/api/v1/frequency-options", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	w = s.do(t, http.MethodPost, "/api/v1/frequency-options", token, map[string]any{"name": "Weekdays"})
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Subset(t, warnings(hook), []string{"Cache read failed", "Cache write failed", "Cache invalidation failed"})
}

func TestFrequencyOptions_CacheHitAndInvalidation(t *testing.T) {
	_, rdb := newTestRedis(t)
	s := newTestServer(t, rdb)
	_, token := s.user(t, "alice")

	assert.Equal(t, "MISS", s.do(t, http.MethodGet, "/api/v1/frequency-options", token, nil).Header().Get("X-Cache"))
	assert.Equal(t, "HIT", s.do(t, http.MethodGet, "/api/v1/frequency-options", token, nil).Header().Get("X-Cache"))

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/v1/frequency-options", token, map[string]any{"name": "Weekdays"}).Code)

	w := s.do(t, http.MethodGet, "/api/v1/frequency-options", token, nil)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Len(t, decode[[]domain.FrequencyOption](t, w), len(domain.DefaultFrequencyNames)+1)
}
