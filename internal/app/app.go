package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"voicebook/internal/chatbot"
	"voicebook/internal/cli/scheme/colours"
	"voicebook/internal/domain/book"
	"voicebook/internal/domain/chat"
	"voicebook/internal/domain/voice"
	"voicebook/internal/player"
	"voicebook/internal/segment"
	"voicebook/internal/speech"
	"voicebook/internal/store"
)

// VoiceBook main application structure
type VoiceBook struct {
	repo   store.Repository
	synth  speech.Synthesizer
	stt    speech.Transcriber
	chat   *chatbot.Client
	reader *player.Player

	ctx    context.Context
	Cancel context.CancelFunc
}

func NewVoiceBook() *VoiceBook {
	ctx, cancel := context.WithCancel(context.Background())

	synth, err := speech.NewSynthesizer(ctx, speech.Config{
		Type:    viper.GetString("tts.backend"),
		BaseURL: viper.GetString("api.base_url"),
		APIKey:  viper.GetString("api.key"),
		Model:   viper.GetString("tts.model"),
		Voice:   viper.GetString("tts.voice"),
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create synthesis backend")
	}

	repo, err := store.NewFileStore(store.DefaultDir())
	if err != nil {
		logrus.WithError(err).Fatal("failed to open library store")
	}

	return &VoiceBook{
		repo:  repo,
		synth: synth,
		stt: speech.NewTranscriptionClient(
			viper.GetString("api.base_url"),
			viper.GetString("api.key"),
			viper.GetString("stt.model"),
		),
		chat: chatbot.NewClient(
			viper.GetString("chat.base_url"),
			viper.GetString("api.key"),
			viper.GetString("chat.model"),
		),
		ctx:    ctx,
		Cancel: cancel,
	}
}

// StopPlayback halts any active narration, for shutdown handling.
func (vb *VoiceBook) StopPlayback() {
	if vb.reader != nil {
		vb.reader.Stop()
	}
}

func (vb *VoiceBook) ShowWelcome() {
	fmt.Println()
	colours.Title.Println("🌟 Welcome to VoiceBook! 🌟")
	fmt.Println()
	colours.Info.Println("📚 Available commands:")
	fmt.Println("  • voicebook books list        - Browse your e-book library")
	fmt.Println("  • voicebook books import      - Upload a plain-text e-book")
	fmt.Println("  • voicebook read <book-id>    - Listen to a chapter, sentence by sentence")
	fmt.Println("  • voicebook chat              - Talk with the emotional chatbot")
	fmt.Println("  • voicebook voices            - List voices, emotions and dialects")
	fmt.Println("  • voicebook cache             - Inspect or clear clip caches")
	fmt.Println()
	colours.Prompt.Println("✨ Ready to give your books a voice? ✨")
}

func (vb *VoiceBook) ListBooks(cmd *cobra.Command, args []string) {
	books, err := vb.repo.LoadBooks()
	if err != nil {
		colours.Error.Printf("❌ Failed to load library: %v\n", err)
		return
	}

	fmt.Println()
	colours.Title.Println("📚 Your Library 📚")
	fmt.Println()

	if len(books) == 0 {
		colours.Warning.Println("🔍 No books yet. Import one with: voicebook books import <file.txt>")
		return
	}

	for _, b := range books {
		colours.Title.Printf("📖 %s\n", b.Title)
		fmt.Printf("   🆔 %d | 📑 %d chapters | ✏️ %d sentences\n", b.ID, len(b.Chapters), b.Sentences())
	}
	fmt.Println()
	colours.Success.Printf("✨ %d books in your library ✨\n", len(books))
}

func (vb *VoiceBook) ImportBook(cmd *cobra.Command, args []string) {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		colours.Error.Printf("❌ Upload failed: %v\n", fmt.Errorf("%w: %v", segment.ErrParseFailure, err))
		return
	}
	if !utf8.Valid(data) {
		colours.Error.Printf("❌ Upload failed: %v\n", fmt.Errorf("%w: not valid UTF-8 text", segment.ErrParseFailure))
		return
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	b := segment.NewBook(title, string(data))

	books, err := vb.repo.LoadBooks()
	if err != nil {
		colours.Error.Printf("❌ Failed to load library: %v\n", err)
		return
	}
	books = append(books, *b)
	if err := vb.repo.SaveBooks(books); err != nil {
		colours.Error.Printf("❌ Failed to save library: %v\n", err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"book":     b.Title,
		"chapters": len(b.Chapters),
	}).Info("imported book")
	colours.Success.Printf("✅ Imported %q: %d chapters, %d sentences\n", b.Title, len(b.Chapters), b.Sentences())
}

func (vb *VoiceBook) DeleteBook(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		colours.Error.Printf("❌ Invalid book id %q\n", args[0])
		return
	}

	books, err := vb.repo.LoadBooks()
	if err != nil {
		colours.Error.Printf("❌ Failed to load library: %v\n", err)
		return
	}

	kept := make([]book.Book, 0, len(books))
	for _, b := range books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(books) {
		colours.Error.Printf("❌ Book with id %d not found\n", id)
		return
	}
	if err := vb.repo.SaveBooks(kept); err != nil {
		colours.Error.Printf("❌ Failed to save library: %v\n", err)
		return
	}
	colours.Success.Println("✅ Book deleted")
}

func (vb *VoiceBook) ReadBook(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		colours.Error.Printf("❌ Invalid book id %q\n", args[0])
		return
	}

	books, err := vb.repo.LoadBooks()
	if err != nil {
		colours.Error.Printf("❌ Failed to load library: %v\n", err)
		return
	}
	var selected *book.Book
	for i := range books {
		if books[i].ID == id {
			selected = &books[i]
			break
		}
	}
	if selected == nil {
		colours.Error.Printf("❌ Book with id %d not found\n", id)
		return
	}

	chapterID, _ := cmd.Flags().GetInt("chapter")
	chapter := selected.Chapter(chapterID)
	if chapter == nil {
		chapter = vb.interactiveChapterSelection(selected)
		if chapter == nil {
			return
		}
	}
	if len(chapter.Content) == 0 {
		colours.Warning.Println("🔍 This chapter has no sentences.")
		return
	}

	cfg := player.Config{
		Voice:   viper.GetString("tts.voice"),
		Emotion: viper.GetString("tts.emotion"),
		Dialect: viper.GetString("tts.dialect"),
	}
	if v, _ := cmd.Flags().GetString("voice"); v != "" {
		cfg.Voice = v
	}
	if e, _ := cmd.Flags().GetString("emotion"); e != "" {
		cfg.Emotion = e
	}
	if d, _ := cmd.Flags().GetString("dialect"); d != "" {
		cfg.Dialect = d
	}

	cache, err := player.NewClipCache(viper.GetInt("player.cache_size"))
	if err != nil {
		colours.Error.Printf("❌ Failed to create clip cache: %v\n", err)
		return
	}
	defer cache.Close()

	sentences := chapter.Content
	p := player.New(vb.ctx, vb.synth, cache, player.NewSpeakerOutput(), cfg,
		player.WithPrefetch(viper.GetInt("player.prefetch")),
		player.WithSentenceStart(func(i int) {
			fmt.Printf("\n  %d/%d ", i+1, len(sentences))
			colours.Sentence.Print(sentences[i])
			fmt.Println()
		}),
		player.WithChapterDone(func() {
			fmt.Println()
			colours.Success.Println("✅ Chapter complete! 🌟")
		}),
		player.WithPlaybackError(func(err error) {
			colours.Error.Printf("❌ Playback error: %v\n", err)
		}),
	)
	p.SetChapter(sentences)
	vb.reader = p

	fmt.Println()
	colours.Title.Printf("📖 %s — %s\n", selected.Title, chapter.Title)
	colours.Success.Println("🎵 Starting narration... 🎵")
	fmt.Println("💡 s stop/resume, v/e/d change voice/emotion/dialect, q quit")

	if err := p.Play(0); err != nil {
		colours.Error.Printf("❌ Playback failed: %v\n", err)
		return
	}

	vb.narrationLoop(p)
}

func (vb *VoiceBook) interactiveChapterSelection(b *book.Book) *book.Chapter {
	fmt.Println()
	colours.Title.Printf("📚 Chapters of %s 📚\n", b.Title)
	for _, c := range b.Chapters {
		fmt.Printf("%d. ", c.ID)
		colours.Title.Printf("%s", c.Title)
		fmt.Printf(" (%d sentences)\n", len(c.Content))
	}
	fmt.Println()
	colours.Prompt.Print("🌟 Enter a chapter number (or 'q' to quit): ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "q" || input == "quit" {
		return nil
	}

	id, err := strconv.Atoi(input)
	if err != nil || b.Chapter(id) == nil {
		colours.Error.Println("❌ Invalid selection!")
		return nil
	}
	return b.Chapter(id)
}

func (vb *VoiceBook) narrationLoop(p *player.Player) {
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-vb.ctx.Done():
			return
		default:
			input, err := reader.ReadString('\n')
			if err != nil {
				p.Stop()
				return
			}
			fields := strings.Fields(input)
			if len(fields) == 0 {
				colours.Info.Printf("ℹ️  %s at sentence %d\n", p.State(), p.Cursor()+1)
				continue
			}

			switch fields[0] {
			case "s", "stop":
				if p.State() == player.StatePlaying || p.State() == player.StateLoading {
					p.Stop()
					colours.Warning.Printf("⏹️  Stopped at sentence %d\n", p.Cursor()+1)
				} else {
					if err := p.Resume(); err != nil {
						colours.Error.Printf("❌ Resume failed: %v\n", err)
					} else {
						colours.Success.Printf("▶️  Resumed at sentence %d\n", p.Cursor()+1)
					}
				}
			case "v", "voice":
				if len(fields) < 2 {
					colours.Info.Println("ℹ️  Usage: v <voice-id>")
					continue
				}
				p.SetVoice(fields[1])
				colours.Success.Printf("🎤 Voice set to %s\n", fields[1])
			case "e", "emotion":
				if len(fields) < 2 {
					colours.Info.Println("ℹ️  Usage: e <emotion>")
					continue
				}
				p.SetEmotion(fields[1])
				colours.Success.Printf("🎭 Emotion set to %s\n", fields[1])
			case "d", "dialect":
				if len(fields) < 2 {
					colours.Info.Println("ℹ️  Usage: d <dialect>")
					continue
				}
				p.SetDialect(fields[1])
				colours.Success.Printf("🗣️ Dialect set to %s\n", fields[1])
			case "q", "quit":
				p.Stop()
				colours.Warning.Println("👋 Goodbye! 🌙")
				return
			default:
				colours.Info.Println("ℹ️  s stop/resume, v/e/d <value>, q quit")
			}
		}
	}
}

func (vb *VoiceBook) Chat(cmd *cobra.Command, args []string) {
	roleID, _ := cmd.Flags().GetString("role")
	if roleID == "" {
		roleID = viper.GetString("chat.role")
	}

	conversation := chat.Conversation{
		ID:        time.Now().UnixMilli(),
		Title:     "对话 " + time.Now().Format("2006-01-02 15:04"),
		CreatedAt: time.Now(),
	}
	if roleID != "" {
		role := chat.FindSystemRole(roleID)
		if role == nil {
			colours.Error.Printf("❌ Unknown role %q. See: voicebook chat roles\n", roleID)
			return
		}
		conversation.Messages = append(conversation.Messages, chat.Message{
			Role:    chat.RoleSystem,
			Content: role.Prompt,
		})
		colours.Info.Printf("🎭 Chatting as %s — %s\n", role.Name, role.Description)
	}

	fmt.Println()
	colours.Title.Println("💬 Emotional Chat 💬")
	fmt.Println("💡 Type a message, or 'q' to quit")

	if audioPath, _ := cmd.Flags().GetString("audio"); audioPath != "" {
		text, err := vb.stt.Transcribe(vb.ctx, audioPath)
		if err != nil {
			colours.Error.Printf("❌ Transcription failed: %v\n", err)
			return
		}
		colours.Prompt.Printf("🎙️ You said: %s\n", text)
		vb.chatTurn(&conversation, text)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-vb.ctx.Done():
			return
		default:
			colours.Prompt.Print("💬 You: ")
			input, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			if input == "q" || input == "quit" {
				colours.Warning.Println("👋 Talk to you later! 🌙")
				return
			}
			vb.chatTurn(&conversation, input)
		}
	}
}

// chatTurn sends one user message, speaks the reply and persists the
// conversation.
func (vb *VoiceBook) chatTurn(conversation *chat.Conversation, input string) {
	conversation.Messages = append(conversation.Messages, chat.Message{
		Role:    chat.RoleUser,
		Content: input,
	})

	reply, thinking, err := vb.chat.Complete(vb.ctx, conversation.Messages)
	if err != nil {
		colours.Error.Printf("❌ Chat failed: %v\n", err)
		return
	}

	if thinking != "" {
		colours.Thinking.Printf("🤔 %s\n", thinking)
	}
	colours.Info.Printf("🤖 %s\n", reply)

	conversation.Messages = append(conversation.Messages, chat.Message{
		Role:     chat.RoleAssistant,
		Content:  reply,
		Thinking: thinking,
	})
	vb.saveConversation(conversation)

	vb.speakReply(reply)
}

// speakReply synthesizes the stripped reply and plays it to completion.
func (vb *VoiceBook) speakReply(reply string) {
	audio, err := vb.synth.Synthesize(vb.ctx, speech.Request{
		Text:    reply,
		Voice:   viper.GetString("tts.voice"),
		Emotion: viper.GetString("tts.emotion"),
		Dialect: viper.GetString("tts.dialect"),
	})
	if err != nil {
		colours.Error.Printf("❌ Speech synthesis failed: %v\n", err)
		return
	}

	clip, err := os.CreateTemp("", "voicebook-reply-*.mp3")
	if err != nil {
		logrus.WithError(err).Warn("failed to materialize reply clip")
		return
	}
	defer os.Remove(clip.Name())
	if _, err := clip.Write(audio); err != nil {
		clip.Close()
		logrus.WithError(err).Warn("failed to write reply clip")
		return
	}
	clip.Close()

	out := player.NewSpeakerOutput()
	done, err := out.Play(clip.Name())
	if err != nil {
		colours.Error.Printf("❌ Audio playback failed: %v\n", err)
		return
	}
	select {
	case <-done:
	case <-vb.ctx.Done():
		out.Stop()
	}
}

func (vb *VoiceBook) saveConversation(conversation *chat.Conversation) {
	conversations, err := vb.repo.LoadConversations()
	if err != nil {
		logrus.WithError(err).Warn("failed to load conversation history")
		return
	}

	replaced := false
	for i := range conversations {
		if conversations[i].ID == conversation.ID {
			conversations[i] = *conversation
			replaced = true
			break
		}
	}
	if !replaced {
		conversations = append(conversations, *conversation)
	}
	if err := vb.repo.SaveConversations(conversations); err != nil {
		logrus.WithError(err).Warn("failed to save conversation history")
	}
}

func (vb *VoiceBook) ListConversations(cmd *cobra.Command, args []string) {
	conversations, err := vb.repo.LoadConversations()
	if err != nil {
		colours.Error.Printf("❌ Failed to load history: %v\n", err)
		return
	}

	fmt.Println()
	colours.Title.Println("💬 Conversation History 💬")
	if len(conversations) == 0 {
		colours.Warning.Println("🔍 No conversations yet.")
		return
	}
	for _, c := range conversations {
		fmt.Printf("  🆔 %d | %s | %d messages | %s\n",
			c.ID, c.Title, len(c.Messages), c.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func (vb *VoiceBook) ListRoles(cmd *cobra.Command, args []string) {
	fmt.Println()
	colours.Title.Println("🎭 Chat Roles 🎭")
	for _, r := range chat.SystemRoles {
		colours.Info.Printf("  %s", r.ID)
		fmt.Printf(" — %s (%s)\n", r.Name, r.Description)
	}
}

func (vb *VoiceBook) ListVoices(cmd *cobra.Command, args []string) {
	fmt.Println()
	colours.Title.Println("🎤 Voices 🎤")
	for _, v := range voice.BuiltIn {
		colours.Info.Printf("  %s", v.ID)
		fmt.Printf(" — %s, %s, %s\n", v.Description, v.Gender, v.Language)
	}

	if google, ok := vb.synth.(*speech.GoogleSynthesizer); ok {
		names, err := google.ListVoices(vb.ctx)
		if err != nil {
			colours.Warning.Printf("⚠️ Could not list Google voices: %v\n", err)
		} else {
			colours.Info.Printf("  ...and %d Google Cloud voices\n", len(names))
		}
	}

	fmt.Println()
	colours.Title.Println("🎭 Emotions 🎭")
	fmt.Println("  " + strings.Join(voice.Emotions, "  "))
	fmt.Println()
	colours.Title.Println("🗣️ Dialects 🗣️")
	fmt.Println("  " + strings.Join(voice.Dialects, "  "))
}

// ShowCacheStatus lists leftover clip session directories.
func (vb *VoiceBook) ShowCacheStatus(cmd *cobra.Command, args []string) {
	colours.Title.Println("📊 Clip Cache Status")

	dirs, err := filepath.Glob(filepath.Join(os.TempDir(), "voicebook-clips-*"))
	if err != nil || len(dirs) == 0 {
		colours.Warning.Println("❌ No clip session directories found")
		return
	}

	var totalFiles int
	var totalSize int64
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if info, err := e.Info(); err == nil {
				totalFiles++
				totalSize += info.Size()
			}
		}
	}
	colours.Success.Printf("✅ %d session directories\n", len(dirs))
	colours.Info.Printf("📏 %d clips, %.2f MB\n", totalFiles, float64(totalSize)/(1024*1024))
}

// ClearCache removes leftover clip session directories.
func (vb *VoiceBook) ClearCache(cmd *cobra.Command, args []string) {
	dirs, err := filepath.Glob(filepath.Join(os.TempDir(), "voicebook-clips-*"))
	if err != nil {
		colours.Error.Printf("❌ Failed to scan caches: %v\n", err)
		return
	}
	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil {
			colours.Warning.Printf("⚠️ Could not remove %s: %v\n", dir, err)
		}
	}
	colours.Success.Printf("✅ Cleared %d session directories\n", len(dirs))
}
