package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"voicebook/internal/app"
	"voicebook/internal/cli/scheme/colours"
	"voicebook/internal/config"
)

func main() {

	config.SetDefaults()

	vb := app.NewVoiceBook()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		vb.Cancel()
		vb.StopPlayback()
		fmt.Println("\n" + colours.Warning.Sprint("👋 Goodbye! 🌙"))
		os.Exit(0)
	}()

	rootCmd := &cobra.Command{
		Use:   "voicebook",
		Short: "🎧 Give your e-books a voice",
		Long: `
┌─────────────────────────────────────┐
│  🎧 Welcome to VoiceBook! 📚       │
│  Sentence-by-sentence narration     │
│  and emotional speech chat 🎭      │
└─────────────────────────────────────┘

VoiceBook reads your uploaded e-books aloud with synthesized emotional
voices and lets you talk with a chatbot that answers in speech.
		`,
		Run: func(cmd *cobra.Command, args []string) {
			vb.ShowWelcome()
		},
	}

	// Books commands
	booksCmd := &cobra.Command{
		Use:   "books",
		Short: "📚 Manage your e-book library",
	}
	listBooksCmd := &cobra.Command{
		Use:   "list",
		Short: "📋 List imported e-books",
		Run:   vb.ListBooks,
	}
	importCmd := &cobra.Command{
		Use:   "import [file.txt]",
		Short: "📥 Import a plain-text e-book",
		Long:  "Parse a UTF-8 text file into chapters and sentences and add it to the library",
		Args:  cobra.ExactArgs(1),
		Run:   vb.ImportBook,
	}
	deleteCmd := &cobra.Command{
		Use:   "delete [book-id]",
		Short: "🗑️ Delete an e-book",
		Args:  cobra.ExactArgs(1),
		Run:   vb.DeleteBook,
	}
	booksCmd.AddCommand(listBooksCmd, importCmd, deleteCmd)

	// Read command
	readCmd := &cobra.Command{
		Use:   "read [book-id]",
		Short: "📖 Read a chapter aloud",
		Long:  "Play a chapter sentence by sentence with prefetching and live voice controls",
		Args:  cobra.ExactArgs(1),
		Run:   vb.ReadBook,
	}
	readCmd.Flags().IntP("chapter", "c", 0, "Chapter id to read (prompts when omitted)")
	readCmd.Flags().StringP("voice", "v", "", "Voice to narrate with. See voice list for options")
	readCmd.Flags().StringP("emotion", "e", "", "Emotion for the narration instruction")
	readCmd.Flags().StringP("dialect", "d", "", "Dialect for the narration instruction")

	// Chat commands
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "💬 Talk with the emotional chatbot",
		Long:  "Chat with a language model that replies in synthesized emotional speech",
		Run:   vb.Chat,
	}
	chatCmd.Flags().StringP("role", "r", "", "System role persona (see: voicebook chat roles)")
	chatCmd.Flags().StringP("audio", "a", "", "Start from a recorded audio file (transcribed first)")

	rolesCmd := &cobra.Command{
		Use:   "roles",
		Short: "🎭 List chat role personas",
		Run:   vb.ListRoles,
	}
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "🕐 List saved conversations",
		Run:   vb.ListConversations,
	}
	chatCmd.AddCommand(rolesCmd, historyCmd)

	// Voices command
	voicesCmd := &cobra.Command{
		Use:   "voices",
		Short: "🎤 List voices, emotions and dialects",
		Run:   vb.ListVoices,
	}

	// Cache commands
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "🗄️ Manage clip caches",
	}
	cacheStatusCmd := &cobra.Command{
		Use:   "status",
		Short: "📊 Show clip cache status",
		Run:   vb.ShowCacheStatus,
	}
	cacheClearCmd := &cobra.Command{
		Use:   "clear",
		Short: "🧹 Remove leftover clip sessions",
		Run:   vb.ClearCache,
	}
	cacheCmd.AddCommand(cacheStatusCmd, cacheClearCmd)

	rootCmd.AddCommand(booksCmd, readCmd, chatCmd, voicesCmd, cacheCmd)

	if err := rootCmd.Execute(); err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}
}

// Configuration management with Viper
func init() {
	viper.SetConfigName("voicebook")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.voicebook")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("voicebook")
	viper.AutomaticEnv()

	viper.ReadInConfig()
}
