package models

// Social holds per-user interaction data. InlineEmojis mirrors
// UserStats.Emojis; the duplication keeps the social artifact
// self-contained for the presentation layer.
type Social struct {
	Pinned         []string       `json:"pinned"`
	Attachments    []string       `json:"attachments"`
	ReactionsGiven map[string]int `json:"reactions_given"`
	MentionsGiven  map[string]int `json:"mentions_given"`
	MentionedBy    int            `json:"mentioned_by"`
	InlineEmojis   map[string]int `json:"inline_emojis"`
}

func NewSocial() *Social {
	return &Social{
		Pinned:         make([]string, 0),
		Attachments:    make([]string, 0),
		ReactionsGiven: make(map[string]int),
		MentionsGiven:  make(map[string]int),
		InlineEmojis:   make(map[string]int),
	}
}
