package handlers

import (
	userRepoPkg "sevahub/database/repository/user"
)

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	Auth    *AuthHandler
	Account *AccountHandler
	Booking *BookingHandler
	Feed    *FeedHandler
	Admin   *AdminHandler
}
