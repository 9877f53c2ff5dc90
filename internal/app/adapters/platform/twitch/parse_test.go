package twitch

import (
	"testing"

	twitchirc "github.com/gempir/go-twitch-irc/v4"
	"github.com/stretchr/testify/assert"
)

func TestSubTierFromBadge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version int
		want    int
	}{
		{0, 1},
		{3, 1},
		{12, 1},
		{1000, 1},
		{1012, 1},
		{2000, 2},
		{2006, 2},
		{3000, 3},
		{3024, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, subTierFromBadge(tt.version), "badge version %d", tt.version)
	}
}

func TestChatUserFromMessage(t *testing.T) {
	t.Parallel()

	t.Run("plain viewer", func(t *testing.T) {
		t.Parallel()

		user := chatUserFromMessage(twitchirc.PrivateMessage{
			User: twitchirc.User{Name: "bob", DisplayName: "Bob", Color: "#FF0000"},
		})
		assert.Equal(t, "bob", user.Username)
		assert.Equal(t, "Bob", user.DisplayName)
		assert.Equal(t, "#FF0000", user.Color)
		assert.False(t, user.IsBroadcaster)
		assert.False(t, user.IsMod)
		assert.False(t, user.IsSub)
		assert.Zero(t, user.SubTier)
	})

	t.Run("broadcaster badge", func(t *testing.T) {
		t.Parallel()

		user := chatUserFromMessage(twitchirc.PrivateMessage{
			User: twitchirc.User{Name: "streamer", Badges: map[string]int{"broadcaster": 1}},
		})
		assert.True(t, user.IsBroadcaster)
	})

	t.Run("mod via tag", func(t *testing.T) {
		t.Parallel()

		user := chatUserFromMessage(twitchirc.PrivateMessage{
			User: twitchirc.User{Name: "mona"},
			Tags: map[string]string{"mod": "1"},
		})
		assert.True(t, user.IsMod)
	})

	t.Run("vip via badge", func(t *testing.T) {
		t.Parallel()

		user := chatUserFromMessage(twitchirc.PrivateMessage{
			User: twitchirc.User{Name: "vicky", Badges: map[string]int{"vip": 1}},
		})
		assert.True(t, user.IsVip)
	})

	t.Run("tier 3 sub via badge version", func(t *testing.T) {
		t.Parallel()

		user := chatUserFromMessage(twitchirc.PrivateMessage{
			User: twitchirc.User{Name: "sam", Badges: map[string]int{"subscriber": 3012}},
			Tags: map[string]string{"subscriber": "1"},
		})
		assert.True(t, user.IsSub)
		assert.Equal(t, 3, user.SubTier)
	})

	t.Run("sub tag without badge defaults to tier 1", func(t *testing.T) {
		t.Parallel()

		user := chatUserFromMessage(twitchirc.PrivateMessage{
			User: twitchirc.User{Name: "sam"},
			Tags: map[string]string{"subscriber": "1"},
		})
		assert.True(t, user.IsSub)
		assert.Equal(t, 1, user.SubTier)
	})
}
