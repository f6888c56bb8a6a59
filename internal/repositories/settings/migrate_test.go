package settings

import (
	"testing"

	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Empty(t *testing.T) {
	for _, raw := range []string{"", "null", "  {}  "} {
		s, err := Migrate([]byte(raw))
		require.NoError(t, err)
		assert.Empty(t, s.Rules)
		assert.Equal(t, domain.DefaultFallback(), s.Fallback)
	}
}

func TestMigrate_CurrentShape(t *testing.T) {
	raw := `{
		"rules": [{
			"id": "r1", "name": "price", "enabled": false,
			"trigger": {"source": "comment", "matchType": "all", "keywords": ["سعر"], "negativeKeywords": ["شكرا"]},
			"actions": [{"type": "public_reply", "enabled": true, "messageVariations": ["السعر في الموقع"]}],
			"replyOncePerUser": false
		}],
		"fallback": {"mode": "static", "staticMessage": "شكرًا {user_name}"}
	}`

	s, err := Migrate([]byte(raw))
	require.NoError(t, err)
	require.Len(t, s.Rules, 1)

	r := s.Rules[0]
	assert.Equal(t, "r1", r.ID)
	assert.Equal(t, "price", r.Name)
	assert.False(t, r.Enabled)
	assert.False(t, r.ReplyOncePerUser)
	assert.Equal(t, domain.MatchAll, r.Trigger.MatchType)
	assert.Equal(t, []string{"شكرا"}, r.Trigger.NegativeKeywords)
	assert.Equal(t, domain.AutoResponderFallback{Mode: domain.FallbackStatic, StaticMessage: "شكرًا {user_name}"}, s.Fallback)
}

func TestMigrate_MissingFieldsDefault(t *testing.T) {
	raw := `{"rules": [
		{"trigger": {"source": "message", "keywords": ["hi"]}, "actions": [{"type": "direct_message", "messageVariations": ["hello"]}]},
		{"trigger": {"keywords": []}, "actions": [{"type": "public_reply", "messageVariations": ["ok"]}]}
	]}`

	s, err := Migrate([]byte(raw))
	require.NoError(t, err)
	require.Len(t, s.Rules, 2)

	first := s.Rules[0]
	assert.Equal(t, "message-0", first.ID)
	assert.Equal(t, "message-0", first.Name)
	assert.True(t, first.Enabled)
	assert.True(t, first.ReplyOncePerUser)
	assert.Equal(t, domain.MatchAny, first.Trigger.MatchType)
	assert.True(t, first.Actions[0].Enabled)
	assert.Equal(t, []string{}, first.Trigger.NegativeKeywords)

	second := s.Rules[1]
	assert.Equal(t, domain.ItemTypeComment, second.Trigger.Source)
	assert.Equal(t, "comment-1", second.ID)

	assert.Equal(t, domain.DefaultFallback(), s.Fallback)
}

func TestMigrate_LegacyGroups(t *testing.T) {
	raw := `{
		"comments": {"keywords": ["سعر"], "replies": ["السعر في الموقع"], "privateReplies": ["أرسلنا لك التفاصيل"]},
		"messages": {"enabled": false, "keywords": [], "replies": ["أهلا"]}
	}`

	s, err := Migrate([]byte(raw))
	require.NoError(t, err)
	require.Len(t, s.Rules, 2)

	comments := s.Rules[0]
	assert.Equal(t, "comment-0", comments.ID)
	assert.Equal(t, domain.ItemTypeComment, comments.Trigger.Source)
	assert.True(t, comments.Enabled)
	assert.True(t, comments.ReplyOncePerUser)
	require.Len(t, comments.Actions, 2)
	assert.Equal(t, domain.ActionPublicReply, comments.Actions[0].Type)
	assert.Equal(t, domain.ActionPrivateReply, comments.Actions[1].Type)
	require.NoError(t, comments.Validate())

	messages := s.Rules[1]
	assert.Equal(t, "message-0", messages.ID)
	assert.False(t, messages.Enabled)
	require.Len(t, messages.Actions, 1)
	assert.Equal(t, domain.ActionDirectMessage, messages.Actions[0].Type)
}

func TestMigrate_LegacyGroupRuleLists(t *testing.T) {
	raw := `{
		"comments": [
			{"id": "keep", "trigger": {"keywords": ["a"]}, "actions": [{"type": "public_reply", "messageVariations": ["x"]}]},
			{"trigger": {"keywords": ["b"]}, "actions": [{"type": "public_reply", "messageVariations": ["y"]}]}
		],
		"messages": null,
		"fallback": {"mode": "ai"}
	}`

	s, err := Migrate([]byte(raw))
	require.NoError(t, err)
	require.Len(t, s.Rules, 2)
	assert.Equal(t, "keep", s.Rules[0].ID)
	assert.Equal(t, "comment-1", s.Rules[1].ID)
	assert.Equal(t, domain.ItemTypeComment, s.Rules[1].Trigger.Source)
	assert.Equal(t, domain.FallbackAI, s.Fallback.Mode)
	assert.Equal(t, domain.DefaultStaticMessage, s.Fallback.StaticMessage)
}

func TestMigrate_Deterministic(t *testing.T) {
	raw := []byte(`{"comments": {"keywords": ["a"], "replies": ["x"]}, "messages": {"replies": ["y"]}}`)

	first, err := Migrate(raw)
	require.NoError(t, err)
	second, err := Migrate(raw)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMigrate_Invalid(t *testing.T) {
	_, err := Migrate([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrInvalidSettings)

	_, err = Migrate([]byte(`{"rules": "nope"}`))
	assert.ErrorIs(t, err, ErrInvalidSettings)
}
