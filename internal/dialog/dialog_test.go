package dialog

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Closed(t *testing.T) {
	st := NewStore().State()

	assert.False(t, st.Alert.Open)
	assert.False(t, st.Confirm.Open)
	assert.Equal(t, DefaultAlertLabel, st.Alert.ConfirmLabel)
	assert.Equal(t, DefaultConfirmLabel, st.Confirm.ConfirmLabel)
	assert.Equal(t, DefaultCancelLabel, st.Confirm.CancelLabel)
}

func TestShowAlert(t *testing.T) {
	s := NewStore()

	id := s.ShowAlert(KindError, "Ошибка", "Could not reach the server.")
	st := s.State()

	require.NotEmpty(t, id)
	assert.Equal(t, Alert{
		ID:           id,
		Open:         true,
		Kind:         KindError,
		Title:        "Ошибка",
		Message:      "Could not reach the server.",
		ConfirmLabel: "Ок",
	}, st.Alert)

	second := s.ShowAlert(KindSuccess, "Готово", "Сохранено")
	assert.NotEqual(t, id, second)
	assert.Equal(t, "Сохранено", s.State().Alert.Message)
}

func TestDismissAlert(t *testing.T) {
	s := NewStore()
	first := s.ShowAlert(KindInfo, "a", "a")
	second := s.ShowAlert(KindInfo, "b", "b")

	assert.False(t, s.DismissAlert(first), "stale id must be ignored")
	assert.True(t, s.State().Alert.Open)

	assert.True(t, s.DismissAlert(second))
	assert.False(t, s.State().Alert.Open)

	assert.False(t, s.DismissAlert(second), "already dismissed")
}

func TestShowConfirm_Confirmed(t *testing.T) {
	s := NewStore()

	id, answer := s.ShowConfirm(KindWarning, "Удаление", "Удалить продукт?", "Удалить", "")
	st := s.State().Confirm

	assert.True(t, st.Open)
	assert.Equal(t, "Удалить", st.ConfirmLabel)
	assert.Equal(t, DefaultCancelLabel, st.CancelLabel)

	require.True(t, s.Resolve(id, true))
	assert.True(t, <-answer)
	assert.False(t, s.State().Confirm.Open)

	_, ok := <-answer
	assert.False(t, ok, "answer channel is closed after the single value")
}

func TestShowConfirm_Cancelled(t *testing.T) {
	s := NewStore()

	id, answer := s.ShowConfirm(KindWarning, "t", "m", "", "")
	assert.Equal(t, DefaultConfirmLabel, s.State().Confirm.ConfirmLabel)

	require.True(t, s.Resolve(id, false))
	assert.False(t, <-answer)
}

func TestResolve_StaleID(t *testing.T) {
	s := NewStore()

	assert.False(t, s.Resolve("missing", true))

	id, answer := s.ShowConfirm(KindWarning, "t", "m", "", "")
	assert.False(t, s.Resolve("other", true))
	assert.True(t, s.State().Confirm.Open)

	require.True(t, s.Resolve(id, true))
	assert.True(t, <-answer)
	assert.False(t, s.Resolve(id, false), "second answer is ignored")
}

func TestShowConfirm_ReplacesPending(t *testing.T) {
	s := NewStore()

	first, firstAnswer := s.ShowConfirm(KindWarning, "first", "m", "", "")
	second, secondAnswer := s.ShowConfirm(KindWarning, "second", "m", "", "")

	assert.False(t, <-firstAnswer, "replaced confirm resolves as cancelled")
	assert.False(t, s.Resolve(first, true))
	assert.Equal(t, "second", s.State().Confirm.Title)

	require.True(t, s.Resolve(second, true))
	assert.True(t, <-secondAnswer)
}

func TestSubscribe(t *testing.T) {
	s := NewStore()

	var got []State
	unsubscribe := s.Subscribe(func(st State) {
		got = append(got, st)
	})

	id := s.ShowAlert(KindInfo, "t", "m")
	s.DismissAlert("stale")
	s.DismissAlert(id)

	require.Len(t, got, 2, "no notification when nothing changed")
	assert.True(t, got[0].Alert.Open)
	assert.False(t, got[1].Alert.Open)

	unsubscribe()
	unsubscribe()
	s.ShowAlert(KindInfo, "t", "m")
	assert.Len(t, got, 2)
}

func TestSubscribe_CallbackMayUseStore(t *testing.T) {
	s := NewStore()

	var seen State
	s.Subscribe(func(State) {
		seen = s.State()
	})

	s.ShowAlert(KindWarning, "t", "m")
	assert.True(t, seen.Alert.Open)
}

func TestSubscribe_NestedChangeIsDeliveredAfterCurrent(t *testing.T) {
	s := NewStore()

	var got []string
	s.Subscribe(func(st State) {
		got = append(got, st.Alert.Message)
		if st.Alert.Message == "first" {
			s.ShowAlert(KindInfo, "t", "second")
			assert.Equal(t, []string{"first"}, got, "the nested change waits for the current callback")
		}
	})

	s.ShowAlert(KindInfo, "t", "first")
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestSubscribe_ConcurrentChangesArriveInOrder(t *testing.T) {
	s := NewStore()

	var (
		mu      sync.Mutex
		got     []string
		running atomic.Int32
		overlap atomic.Bool
	)
	s.Subscribe(func(st State) {
		if running.Add(1) > 1 {
			overlap.Store(true)
		}
		defer running.Add(-1)

		mu.Lock()
		got = append(got, st.Alert.Message)
		mu.Unlock()
	})

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ShowAlert(KindInfo, "t", fmt.Sprintf("alert %d", i))
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, overlap.Load(), "callbacks never run concurrently")
	require.Len(t, got, n)
	assert.Equal(t, s.State().Alert.Message, got[n-1], "the last snapshot delivered is the current state")
}

func TestConcurrentResolve(t *testing.T) {
	s := NewStore()
	id, answer := s.ShowConfirm(KindWarning, "t", "m", "", "")

	var wg sync.WaitGroup
	results := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.Resolve(id, true)
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for ok := range results {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
	assert.True(t, <-answer)
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindError, KindWarning, KindInfo, KindSuccess} {
		got, ok := ParseKind(string(k))
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("fatal")
	assert.False(t, ok)
}

func TestDefault(t *testing.T) {
	assert.Same(t, Default(), Default())
}
