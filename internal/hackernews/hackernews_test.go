package hackernews_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"newsdesk/internal/fetcher"
	"newsdesk/internal/hackernews"
	"newsdesk/internal/models"
	"newsdesk/internal/worker"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// fakeHN отдаёт списки и элементы из памяти и считает запросы элементов.
type fakeHN struct {
	mu     sync.Mutex
	lists  map[string]string
	items  map[string]string
	hits   []string
	broken bool
}

func (f *fakeHN) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.broken {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	path := strings.TrimSuffix(r.URL.Path, ".json")
	if id, ok := strings.CutPrefix(path, "/item/"); ok {
		f.hits = append(f.hits, id)
		body, found := f.items[id]
		if !found {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(body))
		return
	}
	body, found := f.lists[strings.TrimPrefix(path, "/")]
	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Write([]byte(body))
}

func storyJSON(id int, title, by, typ string) string {
	return fmt.Sprintf(`{"id":%d,"title":%q,"url":"https://example.com/%d","time":%d,"by":%q,"type":%q}`,
		id, title, id, 1700000000+id, by, typ)
}

func newFake() *fakeHN {
	return &fakeHN{
		lists: map[string]string{
			"newstories": `[3001, 3002, 3003, 3004]`,
			"jobstories": `[101, 102]`,
		},
		items: map[string]string{
			"3001": storyJSON(3001, "News A", "authorA", "story"),
			"3002": storyJSON(3002, "News B", "authorB", "story"),
			"3003": storyJSON(3003, "News C", "authorC", "story"),
			"3004": storyJSON(3004, "News D", "authorD", "story"),
			"101":  storyJSON(101, "Job 1", "recruiter1", "job"),
			"102":  storyJSON(102, "Job 2", "recruiter2", "job"),
		},
	}
}

func newClient(t *testing.T, fake *fakeHN, concurrency int) *hackernews.Client {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	f := fetcher.New(hackernews.UpstreamName, server.Client(), nil)
	return hackernews.NewClient(server.URL, f, worker.NewPool(concurrency))
}

func titles(stories []models.StoryItem) []string {
	out := make([]string, len(stories))
	for i, s := range stories {
		out[i] = s.Title
	}
	return out
}

func TestStories_News(t *testing.T) {
	client := newClient(t, newFake(), 4)

	stories, err := client.Stories(context.Background(), hackernews.FeedNews, 2, 0)
	require.NoError(t, err)

	want := []models.StoryItem{
		{ID: 3001, Title: "News A", URL: "https://example.com/3001", Time: 1700003001, Author: "authorA", Type: "story"},
		{ID: 3002, Title: "News B", URL: "https://example.com/3002", Time: 1700003002, Author: "authorB", Type: "story"},
	}
	if diff := cmp.Diff(want, stories); diff != "" {
		t.Errorf("Stories() mismatch (-want +got):\n%s", diff)
	}
}

func TestStories_Jobs(t *testing.T) {
	client := newClient(t, newFake(), 1)

	jobs, err := client.Stories(context.Background(), hackernews.FeedFor("jobs"), 1, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, "Job 1", jobs[0].Title)
	require.Equal(t, "job", jobs[0].Type)
}

func TestStories_Pagination(t *testing.T) {
	for _, concurrency := range []int{1, 3} {
		t.Run(fmt.Sprintf("concurrency %d", concurrency), func(t *testing.T) {
			client := newClient(t, newFake(), concurrency)

			first, err := client.Stories(context.Background(), hackernews.FeedNews, 2, 0)
			require.NoError(t, err)
			second, err := client.Stories(context.Background(), hackernews.FeedNews, 2, 2)
			require.NoError(t, err)

			require.Equal(t, []string{"News A", "News B"}, titles(first))
			require.Equal(t, []string{"News C", "News D"}, titles(second))
		})
	}
}

func TestStories_OffsetPastEnd(t *testing.T) {
	fake := newFake()
	client := newClient(t, fake, 2)

	stories, err := client.Stories(context.Background(), hackernews.FeedNews, 10, 50)
	require.NoError(t, err)
	require.Empty(t, stories)
	require.Empty(t, fake.hits)
}

func TestStories_SkipsFailedAndNullItems(t *testing.T) {
	fake := newFake()
	delete(fake.items, "3002")
	fake.items["3003"] = `null`
	client := newClient(t, fake, 2)

	stories, err := client.Stories(context.Background(), hackernews.FeedNews, 4, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"News A", "News D"}, titles(stories))
	require.Len(t, fake.hits, 4)
}

func TestStories_DefaultsMissingFields(t *testing.T) {
	fake := newFake()
	fake.items["3001"] = `{"id":3001}`
	client := newClient(t, fake, 1)

	stories, err := client.Stories(context.Background(), hackernews.FeedNews, 1, 0)
	require.NoError(t, err)
	require.Equal(t, []models.StoryItem{{
		ID:     3001,
		Title:  "No title",
		URL:    "#",
		Time:   0,
		Author: "Unknown",
		Type:   "story",
	}}, stories)
}

func TestStories_ListFailure(t *testing.T) {
	fake := newFake()
	fake.broken = true
	client := newClient(t, fake, 1)

	stories, err := client.Stories(context.Background(), hackernews.FeedNews, 10, 0)
	require.Equal(t, fetcher.KindStatus, fetcher.KindOf(err))
	require.NotNil(t, stories)
	require.Empty(t, stories)
}

func TestStories_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := hackernews.NewClient(server.URL, fetcher.New(hackernews.UpstreamName, nil, nil), nil)
	stories, err := client.Stories(context.Background(), hackernews.FeedNews, 10, 0)
	require.Equal(t, fetcher.KindTransport, fetcher.KindOf(err))
	require.Empty(t, stories)
}

func TestWindow(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5}

	testCases := []struct {
		name          string
		limit, offset int
		want          []int64
	}{
		{name: "head", limit: 2, offset: 0, want: []int64{1, 2}},
		{name: "middle", limit: 2, offset: 2, want: []int64{3, 4}},
		{name: "tail truncated", limit: 10, offset: 3, want: []int64{4, 5}},
		{name: "past end", limit: 2, offset: 5, want: []int64{}},
		{name: "zero limit", limit: 0, offset: 1, want: []int64{}},
		{name: "negative offset", limit: 1, offset: -4, want: []int64{1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, hackernews.Window(ids, tc.limit, tc.offset))
		})
	}
}

func TestFeedFor(t *testing.T) {
	require.Equal(t, hackernews.FeedJobs, hackernews.FeedFor("jobs"))
	require.Equal(t, hackernews.FeedNews, hackernews.FeedFor("news"))
	require.Equal(t, hackernews.FeedNews, hackernews.FeedFor(""))
}
