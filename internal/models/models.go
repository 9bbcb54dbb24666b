package models

// All lists every persisted model, in migration order.
func All() []any {
	return []any{
		&User{},
		&Community{},
		&Post{},
		&Comment{},
		&Vote{},
		&SpamReport{},
		&Membership{},
		&CommunityRestriction{},
		&Moderator{},
		&ModeratorInvite{},
		&Follow{},
		&Friend{},
		&Block{},
		&SavedPost{},
		&Notification{},
		&OutboxEvent{},
	}
}
