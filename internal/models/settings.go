package models

import (
	"fmt"
	"strconv"
)

// UserSettings is the nested preferences object exchanged with clients.
// Storage is a flat column set on user_settings; the mapping lives in the
// settingsFields table below.
type UserSettings struct {
	Theme         ThemeSettings        `json:"theme"`
	Font          FontSettings         `json:"font"`
	Layout        LayoutSettings       `json:"layout"`
	Reading       ReadingSettings      `json:"reading"`
	Notifications NotificationSettings `json:"notifications"`
}

// ThemeSettings groups appearance preferences
type ThemeSettings struct {
	Mode        string `json:"mode"` // light, dark, system
	AccentColor string `json:"accent_color"`
}

// FontSettings groups typography preferences
type FontSettings struct {
	Family string `json:"family"`
	Size   int    `json:"size"`
}

// LayoutSettings groups page layout preferences
type LayoutSettings struct {
	Density     string `json:"density"` // comfortable, compact
	ShowSidebar bool   `json:"show_sidebar"`
}

// ReadingSettings groups reading experience preferences
type ReadingSettings struct {
	AutoBookmark   bool `json:"auto_bookmark"`
	ShowProgress   bool `json:"show_progress"`
	WordsPerMinute int  `json:"words_per_minute"`
}

// NotificationSettings groups notification opt-ins
type NotificationSettings struct {
	EmailDigest     bool `json:"email_digest"`
	CommentReplies  bool `json:"comment_replies"`
	BillingReceipts bool `json:"billing_receipts"`
	Newsletter      bool `json:"newsletter"`
}

// DefaultSettings returns the settings assigned to a new account
func DefaultSettings() *UserSettings {
	return &UserSettings{
		Theme:   ThemeSettings{Mode: "system", AccentColor: "#1a73e8"},
		Font:    FontSettings{Family: "serif", Size: 16},
		Layout:  LayoutSettings{Density: "comfortable", ShowSidebar: true},
		Reading: ReadingSettings{AutoBookmark: false, ShowProgress: true, WordsPerMinute: 230},
		Notifications: NotificationSettings{
			EmailDigest:     true,
			CommentReplies:  true,
			BillingReceipts: true,
			Newsletter:      false,
		},
	}
}

// settingsField binds one flat column to one nested leaf. The leaf accessor
// returns a pointer into the struct, so the same entry serves both the
// flatten and unflatten directions and the mapping cannot drift.
type settingsField struct {
	column string
	leaf   func(*UserSettings) interface{} // *string, *int or *bool
}

var settingsFields = []settingsField{
	{"theme_mode", func(s *UserSettings) interface{} { return &s.Theme.Mode }},
	{"theme_accent_color", func(s *UserSettings) interface{} { return &s.Theme.AccentColor }},
	{"font_family", func(s *UserSettings) interface{} { return &s.Font.Family }},
	{"font_size", func(s *UserSettings) interface{} { return &s.Font.Size }},
	{"layout_density", func(s *UserSettings) interface{} { return &s.Layout.Density }},
	{"layout_show_sidebar", func(s *UserSettings) interface{} { return &s.Layout.ShowSidebar }},
	{"reading_auto_bookmark", func(s *UserSettings) interface{} { return &s.Reading.AutoBookmark }},
	{"reading_show_progress", func(s *UserSettings) interface{} { return &s.Reading.ShowProgress }},
	{"reading_words_per_minute", func(s *UserSettings) interface{} { return &s.Reading.WordsPerMinute }},
	{"notify_email_digest", func(s *UserSettings) interface{} { return &s.Notifications.EmailDigest }},
	{"notify_comment_replies", func(s *UserSettings) interface{} { return &s.Notifications.CommentReplies }},
	{"notify_billing_receipts", func(s *UserSettings) interface{} { return &s.Notifications.BillingReceipts }},
	{"notify_newsletter", func(s *UserSettings) interface{} { return &s.Notifications.Newsletter }},
}

// SettingsColumns returns the flat column names in table order
func SettingsColumns() []string {
	cols := make([]string, len(settingsFields))
	for i, f := range settingsFields {
		cols[i] = f.column
	}
	return cols
}

// FlattenSettings converts the nested object to flat column values keyed by
// column name
func FlattenSettings(s *UserSettings) map[string]interface{} {
	flat := make(map[string]interface{}, len(settingsFields))
	for _, f := range settingsFields {
		switch p := f.leaf(s).(type) {
		case *string:
			flat[f.column] = *p
		case *int:
			flat[f.column] = *p
		case *bool:
			flat[f.column] = *p
		}
	}
	return flat
}

// UnflattenSettings reconstructs the nested object from flat column values,
// coercing booleans and integers from whatever representation the store
// handed back
func UnflattenSettings(flat map[string]interface{}) (*UserSettings, error) {
	s := &UserSettings{}
	for _, f := range settingsFields {
		raw, ok := flat[f.column]
		if !ok {
			return nil, fmt.Errorf("missing settings column %q", f.column)
		}
		switch p := f.leaf(s).(type) {
		case *string:
			v, err := coerceString(raw)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", f.column, err)
			}
			*p = v
		case *int:
			v, err := coerceInt(raw)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", f.column, err)
			}
			*p = v
		case *bool:
			v, err := coerceBool(raw)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", f.column, err)
			}
			*p = v
		}
	}
	return s, nil
}

func coerceString(raw interface{}) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return "", fmt.Errorf("cannot coerce %T to string", raw)
}

func coerceInt(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case []byte:
		return strconv.Atoi(string(v))
	case string:
		return strconv.Atoi(v)
	}
	return 0, fmt.Errorf("cannot coerce %T to int", raw)
}

func coerceBool(raw interface{}) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	case []byte:
		return strconv.ParseBool(string(v))
	case string:
		return strconv.ParseBool(v)
	}
	return false, fmt.Errorf("cannot coerce %T to bool", raw)
}
