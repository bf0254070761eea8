package sanitize

// LargeFieldSize is the serialized size above which a cleared field is
// reported as large (1 MiB).
const LargeFieldSize = 1024 * 1024

// HistoryField is the per-project field that is special-cased: it is always
// counted per project and always cleared to an empty array.
const HistoryField = "history"

// projectChatFields are the per-project fields cleared in addition to
// history. Order matters for deterministic notices.
var projectChatFields = []string{
	"conversation",
	"messages",
	"chat",
	"conversations",
	"messageHistory",
	"chatHistory",
	"contextCache",
}

// topLevelChatFields are the document-scope fields cleared at the root.
var topLevelChatFields = []string{
	"globalHistory",
	"globalMessages",
	"conversations",
	"recentConversations",
	"conversationCache",
	"chatCache",
}
