package manager

import (
	"fmt"
	"sync"
	"testing"

	"jarvisgw/internal/models"
)

func TestTrackVideoDefaultsAndCost(t *testing.T) {
	m := newTestManager(t, &fakeProbe{})
	entry, cost := m.TrackVideo("", "", -1)
	if entry.Title != "Untitled Video" || entry.Style != "Cinematic" || entry.Duration != "0:30" {
		t.Fatalf("unexpected defaults %+v", entry)
	}
	if cost.Total != 0.145 || entry.Cost != 0.145 {
		t.Fatalf("unexpected cost %+v / %v", cost, entry.Cost)
	}
	if got := m.Ledger().Snapshot().Breakdown[CostAIAPIs]; got != 0.145 {
		t.Fatalf("video cost not booked to ai_apis: %v", got)
	}

	entry, _ = m.TrackVideo("Launch", "Noir", 125)
	if entry.Duration != "2:05" {
		t.Fatalf("expected 2:05, got %q", entry.Duration)
	}
}

func TestTrackVideoZeroDurationIsKept(t *testing.T) {
	m := newTestManager(t, &fakeProbe{})
	entry, cost := m.TrackVideo("Still", "", 0)
	if entry.Duration != "0:00" || cost.Total != 0.03 || cost.Images != 0 || cost.Voice != 0 {
		t.Fatalf("zero duration should cost only the script: %+v %+v", entry, cost)
	}
}

func TestVideoHistoryBounded(t *testing.T) {
	m := newTestManager(t, &fakeProbe{})
	for i := 0; i < maxVideoHistory+5; i++ {
		m.TrackVideo(fmt.Sprintf("video-%d", i), "", 30)
	}
	recent, count := m.RecentVideos()
	if count != maxVideoHistory {
		t.Fatalf("expected history of %d, got %d", maxVideoHistory, count)
	}
	if len(recent) != recentVideosLimit {
		t.Fatalf("expected %d recent videos, got %d", recentVideosLimit, len(recent))
	}
	if recent[0].Title != "video-15" || recent[len(recent)-1].Title != "video-24" {
		t.Fatalf("unexpected window %q..%q", recent[0].Title, recent[len(recent)-1].Title)
	}
}

func TestDraftsNewestFirstAndBounded(t *testing.T) {
	m := newTestManager(t, &fakeProbe{})
	first := m.SaveDraft("once upon a time", "")
	if first.ID != 1 || first.Persona != models.DefaultPersona || first.WordCount != 4 {
		t.Fatalf("unexpected first draft %+v", first)
	}
	for i := 0; i < maxContentDrafts+9; i++ {
		m.SaveDraft(fmt.Sprintf("draft %d", i), "Poet")
	}
	drafts := m.Drafts()
	if len(drafts) != maxContentDrafts {
		t.Fatalf("expected %d drafts, got %d", maxContentDrafts, len(drafts))
	}
	if drafts[0].ID != int64(maxContentDrafts+10) || drafts[len(drafts)-1].ID != 11 {
		t.Fatalf("expected newest first with oldest evicted, got ids %d..%d", drafts[0].ID, drafts[len(drafts)-1].ID)
	}
}

func TestDraftIDsUniqueUnderConcurrency(t *testing.T) {
	m := newTestManager(t, &fakeProbe{})
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.SaveDraft("text", "Mentor")
		}()
	}
	wg.Wait()
	drafts := m.Drafts()
	for i := 1; i < len(drafts); i++ {
		if drafts[i-1].ID != drafts[i].ID+1 {
			t.Fatalf("draft ids not strictly ordered: %d then %d", drafts[i-1].ID, drafts[i].ID)
		}
	}
}

func TestBoundedListTail(t *testing.T) {
	l := newBoundedList[int](3)
	for i := 1; i <= 5; i++ {
		l.Append(i)
	}
	if got := l.Snapshot(); len(got) != 3 || got[0] != 3 || got[2] != 5 {
		t.Fatalf("unexpected snapshot %v", got)
	}
	if got := l.Tail(2); len(got) != 2 || got[0] != 4 || got[1] != 5 {
		t.Fatalf("unexpected tail %v", got)
	}
	if got := l.Tail(10); len(got) != 3 {
		t.Fatalf("tail larger than list should return all, got %v", got)
	}
}
