package segment

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseTwoChapters(t *testing.T) {
	input := "第一章 开始\n你好。今天天气不错！\n第二章 结束\nOK。"

	chapters := Parse(input)
	if len(chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(chapters))
	}

	if chapters[0].Title != "第一章 开始" {
		t.Errorf("chapter 1 title = %q", chapters[0].Title)
	}
	want1 := []string{"你好。", "今天天气不错！"}
	if !reflect.DeepEqual(chapters[0].Content, want1) {
		t.Errorf("chapter 1 content = %v, want %v", chapters[0].Content, want1)
	}

	if chapters[1].Title != "第二章 结束" {
		t.Errorf("chapter 2 title = %q", chapters[1].Title)
	}
	want2 := []string{"OK。"}
	if !reflect.DeepEqual(chapters[1].Content, want2) {
		t.Errorf("chapter 2 content = %v, want %v", chapters[1].Content, want2)
	}

	if chapters[0].ID != 1 || chapters[1].ID != 2 {
		t.Errorf("chapter ids = %d, %d, want 1, 2", chapters[0].ID, chapters[1].ID)
	}
}

func TestParseDeterministic(t *testing.T) {
	input := "第一章\n某一天。某个人！\nChapter 2\nSomething happened."

	a := Parse(input)
	b := Parse(input)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("two parses of the same input differ:\n%v\n%v", a, b)
	}
}

func TestParseDefaultChapter(t *testing.T) {
	chapters := Parse("没有标题的正文。第二句！")
	if len(chapters) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(chapters))
	}
	if chapters[0].Title != "第一章" {
		t.Errorf("default chapter title = %q", chapters[0].Title)
	}
	want := []string{"没有标题的正文。", "第二句！"}
	if !reflect.DeepEqual(chapters[0].Content, want) {
		t.Errorf("content = %v, want %v", chapters[0].Content, want)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   \n\t\n"} {
		if chapters := Parse(input); len(chapters) != 0 {
			t.Errorf("Parse(%q) = %d chapters, want 0", input, len(chapters))
		}
	}
}

func TestParseHeadingOnlyFile(t *testing.T) {
	chapters := Parse("第一章\n第二章\nChapter 3")
	if len(chapters) != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(chapters))
	}
	for _, c := range chapters {
		if len(c.Content) != 0 {
			t.Errorf("chapter %d should have no sentences, got %v", c.ID, c.Content)
		}
	}
}

func TestParseChapterCount(t *testing.T) {
	// chapter count = heading lines, plus one for body before the first heading
	tests := []struct {
		input string
		want  int
	}{
		{"第一章\n正文。", 1},
		{"正文。\n第一章\n正文。", 2},
		{"第1章\n第十章\nChapter 12", 3},
		{"正文。", 1},
	}
	for _, tt := range tests {
		if got := len(Parse(tt.input)); got != tt.want {
			t.Errorf("Parse(%q) = %d chapters, want %d", tt.input, got, tt.want)
		}
	}
}

func TestIsHeading(t *testing.T) {
	headings := []string{"第一章", "第十二章 风起", "第3章：出发", "Chapter 12", "第一百章", "Chapter 1 The Beginning"}
	for _, h := range headings {
		if !IsHeading(h) {
			t.Errorf("IsHeading(%q) = false, want true", h)
		}
	}

	body := []string{"他说第一章很好看。", "chapter 12", "第一回", "12 Chapter", "某个普通句子。"}
	for _, b := range body {
		if IsHeading(b) {
			t.Errorf("IsHeading(%q) = true, want false", b)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"你好。今天天气不错！", []string{"你好。", "今天天气不错！"}},
		{"OK。", []string{"OK。"}},
		{"Is it you? Yes!", []string{"Is it you?", " Yes!"}},
		{"没有结尾的句子", []string{"没有结尾的句子"}},
		{"一句。没有结尾的残句", []string{"一句。", "没有结尾的残句"}},
		{"。", []string{"。"}},
	}
	for _, tt := range tests {
		got := SplitSentences(tt.line)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitSentences(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestSplitSentencesPreservesContent(t *testing.T) {
	lines := []string{
		"你好。今天天气不错！明天呢？",
		"A plain English line with no terminals",
		"混合 mixed line. 有中文也有 English! 好？",
		"？！。连续终结符",
	}
	for _, line := range lines {
		if got := strings.Join(SplitSentences(line), ""); got != line {
			t.Errorf("concatenated sentences %q != input %q", got, line)
		}
	}
}

func TestNewBook(t *testing.T) {
	b := NewBook("测试书", "第一章\n正文。")
	if b.ID == 0 {
		t.Error("book id should come from creation time")
	}
	if b.Title != "测试书" {
		t.Errorf("title = %q", b.Title)
	}
	if len(b.Chapters) != 1 || b.Sentences() != 1 {
		t.Errorf("chapters = %d, sentences = %d", len(b.Chapters), b.Sentences())
	}
}
