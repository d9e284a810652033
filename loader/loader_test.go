package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/tmcewan/feedexport/post"
)

// fakePage models a lazy feed: postSize pixels per post, batches in lazy
// unlock as the viewport nears the bottom, batches in more sit behind a
// load-more control.
type fakePage struct {
	posts      int
	postSize   int
	viewport   int
	top        int
	lazy       []int
	more       []int
	clicks     int
	indicators int

	countErr   error
	metricsErr error
	scrollErr  error
}

func (p *fakePage) docHeight() int { return p.posts * p.postSize }

func (p *fakePage) PostCount() (int, error) {
	if p.countErr != nil {
		return 0, p.countErr
	}
	return p.posts, nil
}

func (p *fakePage) Metrics() (ScrollMetrics, error) {
	if p.metricsErr != nil {
		return ScrollMetrics{}, p.metricsErr
	}
	return ScrollMetrics{Top: p.top, ViewportHeight: p.viewport, DocumentHeight: p.docHeight()}, nil
}

func (p *fakePage) ScrollTo(offset int) error {
	if p.scrollErr != nil {
		return p.scrollErr
	}
	p.top = offset
	if len(p.lazy) > 0 && p.top+p.viewport >= p.docHeight()-2*p.postSize {
		p.posts = p.lazy[0]
		p.lazy = p.lazy[1:]
	}
	return nil
}

func (p *fakePage) LoadingIndicatorCount() (int, error) {
	if p.indicators > 0 {
		p.indicators--
		return 1, nil
	}
	return 0, nil
}

func (p *fakePage) HasLoadMore() (bool, error) {
	return len(p.more) > 0, nil
}

func (p *fakePage) ActivateLoadMore() (bool, error) {
	if len(p.more) == 0 {
		return false, nil
	}
	p.posts += p.more[0]
	p.more = p.more[1:]
	p.clicks++
	return true, nil
}

// newTestScroller strips all production waits so tests run instantly.
func newTestScroller(p Page) *Scroller {
	s := NewScroller(p)
	s.limiter = rate.NewLimiter(rate.Inf, 1)
	s.ScrollSettle = 0
	s.IndicatorPoll = 0
	s.IndicatorWait = 0
	s.ClickSettle = 0
	return s
}

// TestLoadAll_Converges drives a feed that grows 10 -> 20 -> 30 posts as
// the viewport approaches the bottom
func TestLoadAll_Converges(t *testing.T) {
	page := &fakePage{posts: 10, postSize: 100, viewport: 500, lazy: []int{20, 30}, indicators: 2}
	s := newTestScroller(page)

	var progress []post.ScrollProgress
	count, err := s.LoadAll(context.Background(), func(p post.ScrollProgress) {
		progress = append(progress, p)
	})

	require.NoError(t, err)
	assert.Equal(t, 30, count)
	assert.Equal(t, Completed, s.State())

	require.NotEmpty(t, progress)
	assert.Equal(t, post.PhaseScrolling, progress[0].Phase)
	assert.Equal(t, 10, progress[0].PostsFound)
	last := progress[len(progress)-1]
	assert.Equal(t, post.PhaseCompleted, last.Phase)
	assert.Equal(t, 30, last.PostsFound)
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i].PostsFound, progress[i-1].PostsFound)
	}
}

// TestLoadAll_ActivatesLoadMore verifies a bottomed-out feed with a visible
// control is not treated as converged until the control is exhausted
func TestLoadAll_ActivatesLoadMore(t *testing.T) {
	page := &fakePage{posts: 10, postSize: 100, viewport: 500, more: []int{5}}
	s := newTestScroller(page)

	count, err := s.LoadAll(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 15, count)
	assert.Equal(t, 1, page.clicks)
	assert.Equal(t, Completed, s.State())
}

// TestLoadAll_SafetyBound verifies the iteration cap fires on a feed that
// never converges, without reporting an error
func TestLoadAll_SafetyBound(t *testing.T) {
	page := &fakePage{posts: 10000, postSize: 100, viewport: 500}
	s := newTestScroller(page)
	s.MaxIterations = 3

	count, err := s.LoadAll(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 10000, count)
	assert.Equal(t, Aborted, s.State())
}

// TestLoadAll_Stop verifies a cooperative stop ends the run cleanly with
// whatever loaded so far
func TestLoadAll_Stop(t *testing.T) {
	page := &fakePage{posts: 10000, postSize: 100, viewport: 500}
	s := newTestScroller(page)

	count, err := s.LoadAll(context.Background(), func(p post.ScrollProgress) {
		s.Stop()
	})

	require.NoError(t, err)
	assert.Equal(t, Completed, s.State())
	assert.GreaterOrEqual(t, count, 10000)
}

// TestLoadAll_ContextCancelled verifies a cancelled context skips the loop
// entirely and still reports the initial count
func TestLoadAll_ContextCancelled(t *testing.T) {
	page := &fakePage{posts: 10, postSize: 100, viewport: 500, lazy: []int{20}}
	s := newTestScroller(page)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	count, err := s.LoadAll(ctx, nil)

	require.NoError(t, err)
	assert.Equal(t, 10, count)
	assert.Equal(t, Completed, s.State())
}

// TestLoadAll_CountError verifies host-page failures abort the run
func TestLoadAll_CountError(t *testing.T) {
	page := &fakePage{countErr: errors.New("renderer gone")}
	s := newTestScroller(page)

	_, err := s.LoadAll(context.Background(), nil)

	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to count posts")
	assert.Equal(t, Aborted, s.State())
}

// TestLoadAll_ScrollError verifies scroll failures propagate wrapped
func TestLoadAll_ScrollError(t *testing.T) {
	page := &fakePage{posts: 10, postSize: 100, viewport: 500, metricsErr: errors.New("detached frame")}
	s := newTestScroller(page)

	_, err := s.LoadAll(context.Background(), nil)

	require.Error(t, err)
	assert.ErrorContains(t, err, "scroll failed")
	assert.Equal(t, Aborted, s.State())
}
