package twitch

import (
	twitchirc "github.com/gempir/go-twitch-irc/v4"

	"github.com/adam-gdovin/keysight-local-bot/internal/app/domain"
)

func chatUserFromMessage(msg twitchirc.PrivateMessage) domain.ChatUser {
	badges := msg.User.Badges

	user := domain.ChatUser{
		Username:      msg.User.Name,
		DisplayName:   msg.User.DisplayName,
		Color:         msg.User.Color,
		IsBroadcaster: badges["broadcaster"] > 0,
		IsMod:         msg.Tags["mod"] == "1" || badges["moderator"] > 0,
		IsVip:         msg.Tags["vip"] == "1" || badges["vip"] > 0,
		IsSub:         msg.Tags["subscriber"] == "1" || badges["subscriber"] > 0,
	}

	if user.IsSub {
		user.SubTier = subTierFromBadge(badges["subscriber"])
	}

	return user
}

// subTierFromBadge reads the tier out of the subscriber badge version,
// the only place USERSTATE exposes it: XX or 10XX months mean tier 1,
// 20XX tier 2, 30XX tier 3.
func subTierFromBadge(version int) int {
	switch {
	case version >= 3000:
		return 3
	case version >= 2000:
		return 2
	}
	return 1
}
