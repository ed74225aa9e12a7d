package board

import (
	"errors"
	"testing"
)

const listingHTML = `<html><body><div id="bodyarea">
<table class="bordercolor" cellspacing="1" width="100%">
<tr>
  <td class="stickybg"><img id="stickyicon_5502000" src="Themes/default/images/topic/sticky.gif" alt="">
    <span id="msg_61000000"><a href="https://bitcointalk.org/index.php?topic=5502000.0">Pinned: announcement format guidelines</a></span></td>
  <td class="stickybg2"><a href="https://bitcointalk.org/index.php?action=profile;u=1">moderator</a></td>
</tr>
<tr>
  <td class="windowbg"><span id="msg_19000001"><a href="https://bitcointalk.org/index.php?topic=5400001.0">Board rules, read before posting</a></span></td>
  <td class="windowbg2"><a href="https://bitcointalk.org/index.php?action=profile;u=2">admin</a></td>
</tr>
<tr>
  <td class="windowbg"><span id="msg_64000010"><a href="https://bitcointalk.org/index.php?topic=5510010.0">[ANN] QuartzCoin &amp; friends - RandomX PoW launch</a></span></td>
  <td class="windowbg2"><a href="https://bitcointalk.org/index.php?action=profile;u=300">quartzdev</a></td>
</tr>
<tr>
  <td class="windowbg"><span id="msg_64000200"><a href="https://bitcointalk.org/index.php?topic=5510200.0">[ANN] LedgerNote - private payments network</a></span></td>
  <td class="windowbg2"><a href="https://bitcointalk.org/index.php?action=profile;u=301">ln_team</a></td>
</tr>
<tr>
  <td class="windowbg"><span id="msg_64000100"><a href="https://bitcointalk.org/index.php?topic=5510100.0">[ANN] Gritstone - fair launch, no premine</a></span></td>
  <td class="windowbg2"><a href="https://bitcointalk.org/index.php?action=profile;u=302">gritminer</a></td>
</tr>
</table>
</div></body></html>`

func TestParse_ExtractsTopicsNewestFirst(t *testing.T) {
	posts, err := Parse(listingHTML)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}

	wantOrder := []int64{5510200, 5510100, 5510010}
	for i, want := range wantOrder {
		if posts[i].TopicID != want {
			t.Errorf("position %d: expected topic %d, got %d", i, want, posts[i].TopicID)
		}
	}

	first := posts[0]
	if first.Title != "[ANN] LedgerNote - private payments network" {
		t.Errorf("unexpected title: %q", first.Title)
	}
	if first.Author != "ln_team" {
		t.Errorf("unexpected author: %q", first.Author)
	}
	if first.MsgID != 64000200 {
		t.Errorf("unexpected msg id: %d", first.MsgID)
	}
	if first.URL != "https://bitcointalk.org/index.php?topic=5510200.0" {
		t.Errorf("unexpected url: %q", first.URL)
	}
}

func TestParse_DecodesEntities(t *testing.T) {
	posts, err := Parse(listingHTML)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	for _, p := range posts {
		if p.TopicID == 5510010 {
			if p.Title != "[ANN] QuartzCoin & friends - RandomX PoW launch" {
				t.Errorf("expected decoded entity in title, got %q", p.Title)
			}
			return
		}
	}
	t.Fatal("topic 5510010 not found")
}

func TestParse_SkipsStickyAndRuleThreads(t *testing.T) {
	posts, err := Parse(listingHTML)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	for _, p := range posts {
		if p.TopicID == 5502000 {
			t.Error("sticky topic should not appear in parser output")
		}
		if p.TopicID == 5400001 {
			t.Error("board-rule thread should not appear in parser output")
		}
	}
}

func TestParse_FailsOnUnexpectedStructure(t *testing.T) {
	_, err := Parse(`<html><body><p>Database Error</p></body></html>`)
	if err == nil {
		t.Fatal("expected parse error for page without topic rows")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}

func TestTop(t *testing.T) {
	posts := []Post{{TopicID: 3}, {TopicID: 2}, {TopicID: 1}}

	if got := Top(posts, 2); len(got) != 2 || got[0].TopicID != 3 {
		t.Errorf("Top(2) = %v", got)
	}
	if got := Top(posts, 10); len(got) != 3 {
		t.Errorf("Top(10) should return all posts, got %d", len(got))
	}
	if got := Top(posts, 0); len(got) != 3 {
		t.Errorf("Top(0) should return all posts, got %d", len(got))
	}
}
