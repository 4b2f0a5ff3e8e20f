package pvclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/n0h4rt/pvclient/models"
)

// expect turns a response into its decoded body, or into a [StatusError] when the status is not 2xx.
func expect[T any](res *Response[T], err error, method, endpoint string) (value T, _ error) {
	if err != nil {
		return value, err
	}
	defer res.Close()

	if !res.OK() {
		return value, newStatusError(res, method, endpoint)
	}

	return res.JSON()
}

// checkPassword applies the API's password rule: 12 to 64 characters.
func checkPassword(password string) error {
	if n := len(password); n < PASSWORD_MIN_LEN || n > PASSWORD_MAX_LEN {
		return ErrInvalidPassword
	}
	return nil
}

// checkMID returns [models.ErrInvalidMID] (wrapped) for identifiers the API would reject.
func checkMID(mid string) error {
	_, err := models.ParseMID(mid)
	return err
}

// Welcome retrieves the identity behind the session cookie.
// It returns nil without an error when the API answers with an empty 2xx body (anonymous session).
func (api *API) Welcome(ctx context.Context) (*models.UserLogin, error) {
	res, err := Get[models.UserLogin](ctx, api, API_WELCOME, nil)
	login, err := expect(res, err, http.MethodGet, API_WELCOME)
	if errors.Is(err, ErrNoContent) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &login, nil
}

// ReservedModules retrieves the reserved module names.
func (api *API) ReservedModules(ctx context.Context) (models.ReservedModules, error) {
	res, err := Get[models.ModulesPayload](ctx, api, API_MODULES, nil)
	payload, err := expect(res, err, http.MethodGet, API_MODULES)
	if err != nil {
		return nil, err
	}
	return payload.ReservedModules.Clone(), nil
}

// Elements retrieves the element ownership table.
func (api *API) Elements(ctx context.Context) (models.ElementsDB, error) {
	res, err := Get[models.ElementsDB](ctx, api, API_ELEMENTS, nil)
	return expect(res, err, http.MethodGet, API_ELEMENTS)
}

// ReserveElement reserves an element under a display name.
// It returns the updated ownership table.
func (api *API) ReserveElement(ctx context.Context, mid, name string) (models.ElementsDB, error) {
	if err := checkMID(mid); err != nil {
		return models.ElementsDB{}, err
	}

	res, err := Post[models.ElementsDB](ctx, api, API_ELEMENTS, NewQuery("mid", mid), models.ElementBody{Name: name})
	return expect(res, err, http.MethodPost, API_ELEMENTS)
}

// RenameElement changes the display name of a reserved element. Requires a logged-in session.
func (api *API) RenameElement(ctx context.Context, mid, name string) (models.ElementsDB, error) {
	if err := checkMID(mid); err != nil {
		return models.ElementsDB{}, err
	}

	res, err := Patch[models.ElementsDB](ctx, api, API_ELEMENTS, NewQuery("mid", mid), models.ElementBody{Name: name})
	return expect(res, err, http.MethodPatch, API_ELEMENTS)
}

// ReleaseElement deletes the reservation of an element. Requires a logged-in session.
func (api *API) ReleaseElement(ctx context.Context, mid string) (models.ElementsDB, error) {
	if err := checkMID(mid); err != nil {
		return models.ElementsDB{}, err
	}

	res, err := Delete[models.ElementsDB](ctx, api, API_ELEMENTS, NewQuery("mid", mid), nil)
	return expect(res, err, http.MethodDelete, API_ELEMENTS)
}

// Users lists all accounts. Requires the admin session.
func (api *API) Users(ctx context.Context) ([]models.User, error) {
	res, err := Get[[]models.User](ctx, api, API_USERS, nil)
	return expect(res, err, http.MethodGet, API_USERS)
}

// AddUser creates an account and returns the updated user list. Requires the admin session.
func (api *API) AddUser(ctx context.Context, name, password string) ([]models.User, error) {
	if err := checkPassword(password); err != nil {
		return nil, err
	}

	res, err := Post[[]models.User](ctx, api, API_USERS, nil, models.AddUserBody{Name: name, Password: password})
	return expect(res, err, http.MethodPost, API_USERS)
}

// SetUserPassword replaces the password of another account and returns the updated user list.
// Requires the admin session.
func (api *API) SetUserPassword(ctx context.Context, uid int, password string) ([]models.User, error) {
	if err := checkPassword(password); err != nil {
		return nil, err
	}

	res, err := Patch[[]models.User](ctx, api, API_USERS, NewQuery("uid", uid), models.PasswordBody{Password: password})
	return expect(res, err, http.MethodPatch, API_USERS)
}

// DeleteUser removes an account and returns the updated user list. Requires the admin session.
func (api *API) DeleteUser(ctx context.Context, uid int) ([]models.User, error) {
	res, err := Delete[[]models.User](ctx, api, API_USERS, NewQuery("uid", uid), nil)
	return expect(res, err, http.MethodDelete, API_USERS)
}

// ChangePassword changes the password of the logged-in user.
// The API invalidates the current session on success.
func (api *API) ChangePassword(ctx context.Context, password string) error {
	if err := checkPassword(password); err != nil {
		return err
	}

	res, err := Patch[struct{}](ctx, api, API_USER_PASSWORD, nil, models.PasswordBody{Password: password})
	if err != nil {
		return err
	}
	defer res.Close()

	if !res.OK() {
		return newStatusError(res, http.MethodPatch, API_USER_PASSWORD)
	}
	return nil
}
