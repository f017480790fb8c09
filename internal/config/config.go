package config

import "github.com/spf13/viper"

func SetDefaults() {
	viper.SetDefault("api.base_url", "https://api.siliconflow.cn/v1")
	viper.SetDefault("api.key", "")

	viper.SetDefault("chat.base_url", "http://127.0.0.1:11434/v1")
	viper.SetDefault("chat.model", "deepseek-r1:8b")
	viper.SetDefault("chat.role", "")

	viper.SetDefault("tts.backend", "auto") // auto-select best backend
	viper.SetDefault("tts.model", "FunAudioLLM/CosyVoice2-0.5B")
	viper.SetDefault("tts.voice", "FunAudioLLM/CosyVoice2-0.5B:anna")
	viper.SetDefault("tts.emotion", "")
	viper.SetDefault("tts.dialect", "")

	viper.SetDefault("stt.model", "FunAudioLLM/SenseVoiceSmall")

	viper.SetDefault("player.cache_size", 10)
	viper.SetDefault("player.prefetch", 3)
}
