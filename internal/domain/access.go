package domain

import (
	"fmt"
	"strings"
)

// Channel identifies a Telegram channel the user must join, in the @name form.
type Channel string

// Link returns the public t.me link of the channel.
func (c Channel) Link() string {
	return "https://t.me/" + strings.TrimPrefix(string(c), "@")
}

// MembershipStatus is the platform-reported relationship of a user to a channel.
type MembershipStatus string

const (
	StatusCreator       MembershipStatus = "creator"
	StatusAdministrator MembershipStatus = "administrator"
	StatusMember        MembershipStatus = "member"
	StatusRestricted    MembershipStatus = "restricted"
	StatusLeft          MembershipStatus = "left"
	StatusKicked        MembershipStatus = "kicked"
)

// Subscribed reports whether the status counts as a subscription.
// Restricted users are still in the channel but do not pass the gate.
func (s MembershipStatus) Subscribed() bool {
	switch s {
	case StatusCreator, StatusAdministrator, StatusMember:
		return true
	}
	return false
}

// AccessDecision is derived fresh from a live membership snapshot on every
// interaction. It is never cached and never persisted.
type AccessDecision bool

const (
	AccessGranted AccessDecision = true
	AccessDenied  AccessDecision = false
)

func (d AccessDecision) Granted() bool { return bool(d) }

func (d AccessDecision) String() string {
	if d.Granted() {
		return "granted"
	}
	return "denied"
}

// CallbackAction is the set of inline keyboard actions the gate handles.
type CallbackAction uint8

const (
	ActionCheckSubscription CallbackAction = iota
	ActionOpenApp
)

const (
	callbackCheckSubscription = "check_subscription"
	callbackOpenApp           = "open_app"
)

// ParseCallbackAction maps raw callback data to a CallbackAction.
func ParseCallbackAction(data string) (CallbackAction, error) {
	switch data {
	case callbackCheckSubscription:
		return ActionCheckSubscription, nil
	case callbackOpenApp:
		return ActionOpenApp, nil
	}
	return 0, fmt.Errorf("unknown callback action %q", data)
}

func (a CallbackAction) String() string {
	switch a {
	case ActionCheckSubscription:
		return callbackCheckSubscription
	case ActionOpenApp:
		return callbackOpenApp
	}
	return fmt.Sprintf("CallbackAction(%d)", uint8(a))
}
