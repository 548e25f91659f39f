package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"skybank/internal/models"
	"skybank/internal/repositories"
	"skybank/internal/routes"
	"skybank/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// testAPI exercises the full HTTP surface against in-memory storage. The
// fixture mirrors production wiring minus the database: one admin, two
// regular users with a USD/EUR/RUB account each, 10000 in every account.
type testAPI struct {
	app         *fiber.App
	userRepo    *repositories.InMemoryUserRepository
	accountRepo *repositories.InMemoryAccountRepository

	adminToken string
	aliceToken string
	bobToken   string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	accountRepo := repositories.NewInMemoryAccountRepository()
	userRepo := repositories.NewInMemoryUserRepository(accountRepo)

	app := fiber.New()
	routes.Wire(app, userRepo, accountRepo, repositories.NoopCache{})

	api := &testAPI{app: app, userRepo: userRepo, accountRepo: accountRepo}

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	seedUser := func(username, role string) *models.User {
		u := &models.User{Username: username, Password: string(hashed), Role: role}
		require.NoError(t, userRepo.Create(u))
		return u
	}

	admin := seedUser("admin", models.RoleAdmin)
	alice := seedUser("alice", models.RoleUser)
	bob := seedUser("bob", models.RoleUser)

	for _, u := range []*models.User{alice, bob} {
		for _, currency := range models.DefaultCurrencies() {
			require.NoError(t, accountRepo.Create(&models.Account{
				UserID:   u.ID,
				Currency: currency,
				Balance:  10000,
			}))
		}
	}

	api.adminToken = token(t, admin)
	api.aliceToken = token(t, alice)
	api.bobToken = token(t, bob)
	return api
}

func token(t *testing.T, u *models.User) string {
	t.Helper()
	tok, err := utils.GenerateToken(&models.UserClaims{UserID: u.ID, Username: u.Username, Role: u.Role})
	require.NoError(t, err)
	return tok
}

func (a *testAPI) request(t *testing.T, method, path, authToken string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, resp, &body)
	return body.Error
}

type accountResponse struct {
	ID       uint   `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func TestLoginEndpoint(t *testing.T) {
	api := newTestAPI(t)

	t.Run("valid credentials return a token", func(t *testing.T) {
		resp := api.request(t, fiber.MethodPost, "/login", "", fiber.Map{
			"username": "alice",
			"password": "secret",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			AccessToken string `json:"access_token"`
		}
		decode(t, resp, &body)
		require.NotEmpty(t, body.AccessToken)

		claims, err := utils.ParseToken(body.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		resp := api.request(t, fiber.MethodPost, "/login", "", fiber.Map{
			"username": "alice",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing fields are a bad request", func(t *testing.T) {
		resp := api.request(t, fiber.MethodPost, "/login", "", fiber.Map{"username": "alice"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAuthRequired(t *testing.T) {
	api := newTestAPI(t)

	t.Run("no token", func(t *testing.T) {
		resp := api.request(t, fiber.MethodGet, "/account/1", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := api.request(t, fiber.MethodGet, "/account/1", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetAccountEndpoint(t *testing.T) {
	api := newTestAPI(t)

	t.Run("owner sees id, amount and currency", func(t *testing.T) {
		resp := api.request(t, fiber.MethodGet, "/account/1", api.aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var account accountResponse
		decode(t, resp, &account)
		assert.Equal(t, accountResponse{ID: 1, Amount: 10000, Currency: "USD"}, account)
	})

	t.Run("another user's account is not found", func(t *testing.T) {
		resp := api.request(t, fiber.MethodGet, "/account/1", api.bobToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("admin is forbidden", func(t *testing.T) {
		resp := api.request(t, fiber.MethodGet, "/account/1", api.adminToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("missing account is not found", func(t *testing.T) {
		resp := api.request(t, fiber.MethodGet, "/account/42", api.aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-numeric id is a bad request", func(t *testing.T) {
		resp := api.request(t, fiber.MethodGet, "/account/abc", api.aliceToken, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDepositEndpoint(t *testing.T) {
	api := newTestAPI(t)

	t.Run("deposit returns the new balance", func(t *testing.T) {
		resp := api.request(t, fiber.MethodPost, "/account/deposit/1", api.aliceToken, fiber.Map{"amount": 5000})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var account accountResponse
		decode(t, resp, &account)
		assert.Equal(t, accountResponse{ID: 1, Amount: 15000, Currency: "USD"}, account)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		resp := api.request(t, fiber.MethodPost, "/account/deposit/1", api.aliceToken, fiber.Map{"amount": -1})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Amount should be more than 0", errorMessage(t, resp))
	})

	t.Run("admin is forbidden", func(t *testing.T) {
		resp := api.request(t, fiber.MethodPost, "/account/deposit/1", api.adminToken, fiber.Map{"amount": 5000})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestWithdrawEndpoint(t *testing.T) {
	api := newTestAPI(t)

	t.Run("withdraw returns the new balance", func(t *testing.T) {
		resp := api.request(t, fiber.MethodPost, "/account/withdraw/1", api.aliceToken, fiber.Map{"amount": 4000})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var account accountResponse
		decode(t, resp, &account)
		assert.Equal(t, int64(6000), account.Amount)
	})

	t.Run("overdraft names the rejected amount", func(t *testing.T) {
		resp := api.request(t, fiber.MethodPost, "/account/withdraw/1", api.aliceToken, fiber.Map{"amount": 15000})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Cannot withdraw 15000 USD", errorMessage(t, resp))
	})
}

func TestTransferEndpoint(t *testing.T) {
	transferBody := func(from, toUser, to uint, amount int64) fiber.Map {
		return fiber.Map{
			"fromAccountId": from,
			"toUserId":      toUser,
			"toAccountId":   to,
			"amount":        amount,
		}
	}

	t.Run("transfer moves funds between users", func(t *testing.T) {
		api := newTestAPI(t)

		// alice USD (id 1) to bob USD (id 4); bob is user 3 in the fixture.
		resp := api.request(t, fiber.MethodPost, "/transfer", api.aliceToken, transferBody(1, 3, 4, 5000))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		from, err := api.accountRepo.GetByID(1)
		require.NoError(t, err)
		to, err := api.accountRepo.GetByID(4)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), from.Balance)
		assert.Equal(t, int64(15000), to.Balance)
	})

	t.Run("currency mismatch is rejected", func(t *testing.T) {
		api := newTestAPI(t)

		// alice USD to bob EUR.
		resp := api.request(t, fiber.MethodPost, "/transfer", api.aliceToken, transferBody(1, 3, 5, 5000))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("source owned by someone else is not found", func(t *testing.T) {
		api := newTestAPI(t)

		resp := api.request(t, fiber.MethodPost, "/transfer", api.bobToken, transferBody(1, 3, 4, 5000))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("admin is forbidden", func(t *testing.T) {
		api := newTestAPI(t)

		resp := api.request(t, fiber.MethodPost, "/transfer", api.adminToken, transferBody(1, 3, 4, 5000))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("insufficient funds is rejected", func(t *testing.T) {
		api := newTestAPI(t)

		resp := api.request(t, fiber.MethodPost, "/transfer", api.aliceToken, transferBody(1, 3, 4, 15000))
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Cannot withdraw 15000 USD", errorMessage(t, resp))
	})
}

func TestCreateUserEndpoint(t *testing.T) {
	t.Run("admin creates a user with three accounts", func(t *testing.T) {
		api := newTestAPI(t)

		resp := api.request(t, fiber.MethodPost, "/user/", api.adminToken, fiber.Map{
			"username": "carol",
			"password": "secret",
			"accounts": []fiber.Map{{"amount": 10000, "currency": "USD"}},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var created struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
			Accounts []struct {
				ID       uint   `json:"id"`
				Amount   int64  `json:"amount"`
				Currency string `json:"currency"`
			} `json:"accounts"`
		}
		decode(t, resp, &created)

		assert.Equal(t, "carol", created.Username)
		require.Len(t, created.Accounts, 3)
		assert.Equal(t, "USD", created.Accounts[0].Currency)
		assert.Equal(t, int64(10000), created.Accounts[0].Amount)
		assert.Equal(t, "EUR", created.Accounts[1].Currency)
		assert.Equal(t, "RUB", created.Accounts[2].Currency)
		// ids continue the shared sequence in creation order
		assert.Equal(t, created.Accounts[0].ID+1, created.Accounts[1].ID)
		assert.Equal(t, created.Accounts[1].ID+1, created.Accounts[2].ID)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		api := newTestAPI(t)

		resp := api.request(t, fiber.MethodPost, "/user/", api.aliceToken, fiber.Map{
			"username": "carol",
			"password": "secret",
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		api := newTestAPI(t)

		resp := api.request(t, fiber.MethodPost, "/user/", api.adminToken, fiber.Map{
			"username": "alice",
			"password": "secret",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing credentials are a bad request", func(t *testing.T) {
		api := newTestAPI(t)

		resp := api.request(t, fiber.MethodPost, "/user/", api.adminToken, fiber.Map{"username": "carol"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestListUsersEndpoint(t *testing.T) {
	api := newTestAPI(t)

	t.Run("regular user sees public views without balances", func(t *testing.T) {
		resp := api.request(t, fiber.MethodGet, "/user/list", api.aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		var users []struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
			Accounts []struct {
				AccountID uint   `json:"accountId"`
				Currency  string `json:"currency"`
			} `json:"accounts"`
		}
		require.NoError(t, json.Unmarshal(raw, &users))

		require.Len(t, users, 3)
		assert.Equal(t, "admin", users[0].Username)
		assert.Empty(t, users[0].Accounts, "admin has no accounts")
		assert.Equal(t, "alice", users[1].Username)
		require.Len(t, users[1].Accounts, 3)
		assert.Equal(t, uint(1), users[1].Accounts[0].AccountID)
		assert.Equal(t, "USD", users[1].Accounts[0].Currency)

		assert.NotContains(t, string(raw), "amount", "list view must not expose balances")
	})

	t.Run("admin is forbidden", func(t *testing.T) {
		resp := api.request(t, fiber.MethodGet, "/user/list", api.adminToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestMeEndpoint(t *testing.T) {
	api := newTestAPI(t)

	t.Run("caller sees own accounts with balances", func(t *testing.T) {
		resp := api.request(t, fiber.MethodGet, "/user/me", api.aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var me struct {
			ID       uint              `json:"id"`
			Username string            `json:"username"`
			Accounts []accountResponse `json:"accounts"`
		}
		decode(t, resp, &me)

		assert.Equal(t, "alice", me.Username)
		require.Len(t, me.Accounts, 3)
		for i, currency := range []string{"USD", "EUR", "RUB"} {
			assert.Equal(t, currency, me.Accounts[i].Currency)
			assert.Equal(t, int64(10000), me.Accounts[i].Amount)
		}
	})

	t.Run("admin is forbidden", func(t *testing.T) {
		resp := api.request(t, fiber.MethodGet, "/user/me", api.adminToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
