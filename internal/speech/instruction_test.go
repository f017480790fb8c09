package speech

import (
	"strings"
	"testing"
)

func TestBuildInputBareText(t *testing.T) {
	got := BuildInput(Request{Text: "你好。"})
	if got != "你好。" {
		t.Errorf("BuildInput without emotion/dialect = %q, want bare text", got)
	}
	if strings.Contains(got, ControlToken) {
		t.Error("bare text must not carry the control token")
	}
}

func TestBuildInputEmotion(t *testing.T) {
	got := BuildInput(Request{Text: "你好。", Emotion: "开心"})
	want := "请用开心的情感朗读这段话" + ControlToken + "你好。"
	if got != want {
		t.Errorf("BuildInput = %q, want %q", got, want)
	}
}

func TestBuildInputDialect(t *testing.T) {
	got := BuildInput(Request{Text: "你好。", Dialect: "四川话"})
	want := "请用四川话朗读这段话" + ControlToken + "你好。"
	if got != want {
		t.Errorf("BuildInput = %q, want %q", got, want)
	}
}

func TestBuildInputEmotionAndDialect(t *testing.T) {
	got := BuildInput(Request{Text: "今天天气不错！", Emotion: "悲伤", Dialect: "粤语"})
	want := "请用悲伤的情感、粤语朗读这段话" + ControlToken + "今天天气不错！"
	if got != want {
		t.Errorf("BuildInput = %q, want %q", got, want)
	}
}

func TestBuildInputTokenSeparatesInstructionFromPayload(t *testing.T) {
	got := BuildInput(Request{Text: "正文在这里。", Emotion: "温柔"})
	idx := strings.Index(got, ControlToken)
	if idx < 0 {
		t.Fatal("control token missing")
	}
	if got[idx+len(ControlToken):] != "正文在这里。" {
		t.Errorf("payload after control token = %q", got[idx+len(ControlToken):])
	}
}
