package inbox

import (
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/zex-pages/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertQuery(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	items := []domain.InboxItem{
		{ID: "C1", Platform: domain.PlatformFacebook, Type: domain.ItemTypeComment, Text: "كم السعر؟",
			AuthorID: "U1", AuthorName: "Ali", Post: &domain.PostRef{ID: "P1"}, Timestamp: ts},
		{ID: "M1", Platform: domain.PlatformInstagram, Type: domain.ItemTypeMessage, Text: "hi",
			AuthorID: "U2", ConversationID: "T1", Timestamp: ts},
	}

	query, args, err := upsertQuery("PAGE", items)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(query, "INSERT INTO inbox_items (page_id,id,platform,type,text,author_id,author_name,post_id,parent_id,conversation_id,can_reply_privately,is_replied,created_at) VALUES ($1,"))
	assert.True(t, strings.HasSuffix(query, "ON CONFLICT (id) DO NOTHING"))
	require.Len(t, args, 26)
	assert.Equal(t, "PAGE", args[0])

	postID, ok := args[7].(*string)
	require.True(t, ok)
	assert.Equal(t, "P1", *postID)
	assert.Nil(t, args[13+7])
}

func TestMarkRepliedQuery(t *testing.T) {
	query, args, err := markRepliedQuery("PAGE", []string{"C1", "C2"})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE inbox_items SET is_replied = $1 WHERE id IN ($2,$3) AND page_id = $4", query)
	assert.Equal(t, []any{true, "C1", "C2", "PAGE"}, args)
}

func TestRepliedInsertQuery(t *testing.T) {
	query, args, err := repliedInsertQuery("PAGE", domain.RepliedUsersPerPost{"P1": {"U1", "U2"}})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO replied_users (page_id,post_key,author_id) VALUES ($1,$2,$3),($4,$5,$6) ON CONFLICT DO NOTHING", query)
	assert.Equal(t, []any{"PAGE", "P1", "U1", "PAGE", "P1", "U2"}, args)
	assert.Equal(t, 2, countAuthors(domain.RepliedUsersPerPost{"P1": {"U1", "U2"}}))
}

func TestListUnrepliedQuery(t *testing.T) {
	const selectPrefix = "SELECT id,platform,type,text,author_id,author_name,post_id,parent_id,conversation_id,can_reply_privately,is_replied,created_at FROM inbox_items "

	t.Run("first page", func(t *testing.T) {
		query, args, err := listUnrepliedQuery("PAGE", Cursor{}, 200)
		require.NoError(t, err)
		assert.Equal(t, selectPrefix+"WHERE is_replied = $1 AND page_id = $2 ORDER BY created_at ASC, id ASC LIMIT 200", query)
		assert.Equal(t, []any{false, "PAGE"}, args)
	})

	t.Run("after cursor", func(t *testing.T) {
		ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		after := After(domain.InboxItem{ID: "C9", Timestamp: ts})

		query, args, err := listUnrepliedQuery("PAGE", after, 50)
		require.NoError(t, err)
		assert.Equal(t, selectPrefix+"WHERE is_replied = $1 AND page_id = $2 AND (created_at, id) > ($3, $4) ORDER BY created_at ASC, id ASC LIMIT 50", query)
		assert.Equal(t, []any{false, "PAGE", ts, "C9"}, args)
	})
}
