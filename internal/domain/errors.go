// Package domain defines the errors shared by every storage backend and usecase.
package domain

import "errors"

var (
	// ErrEmailAlreadyExists is returned when registering a normalized email that is taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned by login when email or password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrProductNotFound = errors.New("product not found")

	// ErrAlreadyInCart is returned by a backend when (user, product) is already reserved.
	ErrAlreadyInCart = errors.New("product already in cart")

	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrProductSold is returned by checkout when a product in the cart was
	// already sold to someone else. Nothing is recorded.
	ErrProductSold = errors.New("product already sold")

	// ErrEmptyCart is returned when checking out without items.
	ErrEmptyCart = errors.New("cart is empty")

	ErrCustomOrderNotFound = errors.New("custom order not found")

	// ErrInvalidTransition is returned when a custom order is not in a state that
	// allows the requested change.
	ErrInvalidTransition = errors.New("invalid custom order transition")

	ErrSettingNotFound = errors.New("setting not found")

	// ErrInvalidBackup is returned when a backup document lacks required collections
	// or cannot be decoded. The current data set is left untouched.
	ErrInvalidBackup = errors.New("invalid backup document")

	// ErrValidation wraps input that fails field validation.
	ErrValidation = errors.New("validation failed")

	// ErrStoreNotInitialized is returned when a backend is used before Initialize.
	ErrStoreNotInitialized = errors.New("store not initialized")
)
