package voice

// Info describes a selectable narration voice.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Language    string `json:"language"`
	Gender      string `json:"gender"`
	Description string `json:"description"`
}

// BuiltIn lists the voices shipped with the default synthesis model.
var BuiltIn = []Info{
	{ID: "FunAudioLLM/CosyVoice2-0.5B:anna", Name: "anna", Language: "zh-CN", Gender: "female", Description: "沉稳女声"},
	{ID: "FunAudioLLM/CosyVoice2-0.5B:bella", Name: "bella", Language: "zh-CN", Gender: "female", Description: "激情女声"},
	{ID: "FunAudioLLM/CosyVoice2-0.5B:claire", Name: "claire", Language: "zh-CN", Gender: "female", Description: "温柔女声"},
	{ID: "FunAudioLLM/CosyVoice2-0.5B:diana", Name: "diana", Language: "zh-CN", Gender: "female", Description: "欢快女声"},
	{ID: "FunAudioLLM/CosyVoice2-0.5B:alex", Name: "alex", Language: "zh-CN", Gender: "male", Description: "沉稳男声"},
	{ID: "FunAudioLLM/CosyVoice2-0.5B:benjamin", Name: "benjamin", Language: "zh-CN", Gender: "male", Description: "低沉男声"},
	{ID: "FunAudioLLM/CosyVoice2-0.5B:charles", Name: "charles", Language: "zh-CN", Gender: "male", Description: "磁性男声"},
	{ID: "FunAudioLLM/CosyVoice2-0.5B:david", Name: "david", Language: "zh-CN", Gender: "male", Description: "欢快男声"},
}

// Emotions the synthesis instruction understands.
var Emotions = []string{"开心", "悲伤", "愤怒", "惊讶", "恐惧", "温柔", "冷静"}

// Dialects the synthesis model can imitate.
var Dialects = []string{"粤语", "四川话", "上海话", "天津话", "长沙话", "郑州话"}
