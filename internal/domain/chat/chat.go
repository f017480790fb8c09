package chat

import "time"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat turn. Thinking holds the model's extracted
// reasoning section, never sent back on the wire or spoken aloud.
type Message struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	Thinking string `json:"thinking,omitempty"`
}

type Conversation struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}

// SystemRole is a selectable persona that seeds a conversation with a
// system prompt.
type SystemRole struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
}

// SystemRoles lists the built-in personas.
var SystemRoles = []SystemRole{
	{
		ID:          "expert",
		Name:        "专家顾问",
		Description: "专业、权威的建议者",
		Prompt:      "你是一位经验丰富的专家顾问，擅长提供专业、权威的建议。",
	},
	{
		ID:          "teacher",
		Name:        "耐心教师",
		Description: "善于解释和引导的教育者",
		Prompt:      "你是一位耐心的教师，擅长用浅显易懂的方式解释复杂概念。",
	},
	{
		ID:          "programmer",
		Name:        "程序员",
		Description: "技术专家和问题解决者",
		Prompt:      "你是一位经验丰富的程序员，擅长解决技术问题和提供编程建议。",
	},
	{
		ID:          "writer",
		Name:        "创意作家",
		Description: "富有想象力的故事讲述者",
		Prompt:      "你是一位富有创造力的作家，擅长讲述引人入胜的故事和创作优美的文字。",
	},
	{
		ID:          "psychologist",
		Name:        "心理咨询师",
		Description: "富有同理心的倾听者",
		Prompt:      "你是一位专业的心理咨询师，擅长倾听、理解并提供心理支持。",
	},
	{
		ID:          "philosopher",
		Name:        "哲学家",
		Description: "深度思考者",
		Prompt:      "你是一位睿智的哲学家，善于探讨人生的深层问题和哲学思考。",
	},
}

// FindSystemRole looks a persona up by id.
func FindSystemRole(id string) *SystemRole {
	for i := range SystemRoles {
		if SystemRoles[i].ID == id {
			return &SystemRoles[i]
		}
	}
	return nil
}
