package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petmeet/petmeet/config"
	"github.com/petmeet/petmeet/store/storetest"
)

type apiClient struct {
	t *testing.T
	h http.Handler
}

func newClient(t *testing.T) apiClient {
	t.Helper()
	return newClientWith(t, func(*config.AppConfig) {})
}

func newClientWith(t *testing.T, tweak func(*config.AppConfig)) apiClient {
	t.Helper()
	cfg := config.AppConfig{
		JWTSecret:          "test-secret",
		GinMode:            "test",
		PageSize:           2,
		RateLimitPerMinute: 100000,
		AccessTokenMinutes: 5,
		RefreshTokenHours:  1,
	}
	tweak(&cfg)
	return apiClient{t: t, h: SetupRouter(storetest.NewDB(t), cfg, nil)}
}

func (c apiClient) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func id(m map[string]interface{}) int {
	return int(m["id"].(float64))
}

// signUp registers a user living in city and returns its id and access token.
func (c apiClient) signUp(email string, city interface{}) (int, string) {
	c.t.Helper()
	w := c.do(http.MethodPost, "/sign_up/", "", map[string]interface{}{
		"email":           email,
		"password":        "pa55word",
		"first_name":      "Ann",
		"last_name":       "Smith",
		"address_street":  nil,
		"address_city":    city,
		"address_country": "Italy",
		"phone_number":    nil,
		"bio":             "I like dogs",
	})
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())
	userID := id(decode(c.t, w))

	w = c.do(http.MethodPost, "/sign_in/", "", map[string]string{"email": email, "password": "pa55word"})
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())
	return userID, decode(c.t, w)["access"].(string)
}

func (c apiClient) createGroup(token, name string) int {
	c.t.Helper()
	w := c.do(http.MethodPost, "/groups/", token, map[string]string{"name": name})
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())
	return id(decode(c.t, w))
}

func TestHealth(t *testing.T) {
	c := newClient(t)
	w := c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSignUp(t *testing.T) {
	c := newClient(t)

	w := c.do(http.MethodPost, "/sign_up/", "", map[string]interface{}{
		"email": "ann@example.com", "password": "pa55word", "first_name": "Ann", "last_name": "Smith",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "ann@example.com", body["email"])
	assert.Equal(t, []interface{}{}, body["animals"])
	assert.Equal(t, []interface{}{}, body["created_groups"])
	assert.Equal(t, []interface{}{}, body["attending_meetings"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")

	w = c.do(http.MethodPost, "/sign_up", "", map[string]interface{}{
		"email": "Ann@Example.com", "password": "x", "first_name": "B", "last_name": "C",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"User with email ann@example.com already exists"}`, w.Body.String())

	w = c.do(http.MethodPost, "/sign_up/", "", map[string]interface{}{"email": "not-an-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	msg := decode(t, w)["error"].(string)
	assert.Contains(t, msg, "email: Enter a valid email address.")
	assert.Contains(t, msg, "first_name: This field is required.")
}

func TestSignInRefreshAndSignOut(t *testing.T) {
	c := newClient(t)
	c.signUp("ann@example.com", "Rome")

	w := c.do(http.MethodPost, "/sign_in/", "", map[string]string{"email": "ann@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = c.do(http.MethodPost, "/sign_in/", "", map[string]string{"email": "nobody@example.com", "password": "pa55word"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = c.do(http.MethodPost, "/sign_in/", "", map[string]string{"email": "ann@example.com", "password": "pa55word"})
	require.Equal(t, http.StatusOK, w.Code)
	tokens := decode(t, w)
	access, refresh := tokens["access"].(string), tokens["refresh"].(string)

	w = c.do(http.MethodPost, "/sign_in/refresh/", "", map[string]string{"refresh": access})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = c.do(http.MethodPost, "/sign_in/refresh/", "", map[string]string{"refresh": refresh})
	require.Equal(t, http.StatusOK, w.Code)
	fresh := decode(t, w)["access"].(string)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/users/", fresh, nil).Code)

	w = c.do(http.MethodPost, "/sign_out/", access, map[string]string{"refresh": refresh})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/users/", access, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/sign_in/refresh/", "", map[string]string{"refresh": refresh}).Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/users/", fresh, nil).Code)
}

func TestAuthenticationRequired(t *testing.T) {
	c := newClient(t)
	for _, path := range []string{"/users/", "/groups", "/groups/1/", "/posts/1/comments/"} {
		w := c.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestUserUpdate(t *testing.T) {
	c := newClient(t)
	annID, ann := c.signUp("ann@example.com", "Rome")
	bobID, bob := c.signUp("bob@example.com", "Rome")

	update := map[string]interface{}{
		"password": "n3w", "first_name": "Annie", "last_name": "Smith",
		"address_city": "Milan", "bio": nil,
	}

	w := c.do(http.MethodPut, fmt.Sprintf("/users/%d/", bobID), ann, update)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"forbidden"}`, w.Body.String())

	w = c.do(http.MethodPut, fmt.Sprintf("/users/%d/", annID), ann, update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Annie", body["first_name"])
	assert.Equal(t, "Milan", body["address_city"])
	assert.Nil(t, body["bio"])
	newAccess := body["tokens"].(map[string]interface{})["access"].(string)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/users/", ann, nil).Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/users/", newAccess, nil).Code)

	w = c.do(http.MethodPost, "/sign_in/", "", map[string]string{"email": "ann@example.com", "password": "n3w"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodGet, "/users/999/", bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"user not found"}`, w.Body.String())
}

func TestGroups(t *testing.T) {
	c := newClient(t)
	_, ann := c.signUp("ann@example.com", "Rome")
	_, bob := c.signUp("bob@example.com", "Milan")
	_, nomad := c.signUp("nomad@example.com", nil)

	w := c.do(http.MethodPost, "/groups/", nomad, map[string]string{"name": "Wanderers"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodPost, "/groups/", ann, map[string]string{"name": "Dogs"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	assert.Equal(t, "Rome", created["city"])
	assert.Equal(t, "ann@example.com", created["creator"].(map[string]interface{})["email"])
	groupPath := fmt.Sprintf("/groups/%d/", id(created))
	c.createGroup(bob, "Cats")

	w = c.do(http.MethodPut, groupPath, bob, map[string]string{"name": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"You are not the owner of the group"}`, w.Body.String())
	w = c.do(http.MethodDelete, groupPath, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = c.do(http.MethodGet, groupPath, bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dogs", decode(t, w)["name"])

	w = c.do(http.MethodPut, groupPath, ann, map[string]string{"name": "Big Dogs"})
	require.Equal(t, http.StatusOK, w.Code)
	renamed := decode(t, w)
	assert.Equal(t, true, renamed["success"])
	assert.Equal(t, "Big Dogs", renamed["group"].(map[string]interface{})["name"])

	w = c.do(http.MethodGet, "/groups?city=Milan", ann, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	assert.EqualValues(t, 1, page["count"])
	assert.Equal(t, "Cats", page["results"].([]interface{})[0].(map[string]interface{})["name"])

	w = c.do(http.MethodDelete, groupPath, ann, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, groupPath, ann, nil).Code)
}

func TestPagination(t *testing.T) {
	c := newClient(t)
	_, ann := c.signUp("ann@example.com", "Rome")
	for _, name := range []string{"A", "B", "C"} {
		c.createGroup(ann, name)
	}

	w := c.do(http.MethodGet, "/groups/", ann, nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := decode(t, w)
	assert.EqualValues(t, 3, first["count"])
	assert.Len(t, first["results"], 2)
	assert.Equal(t, "http://example.com/groups/?page=2", first["next"])
	assert.Nil(t, first["previous"])

	w = c.do(http.MethodGet, "/groups/?page=2", ann, nil)
	require.Equal(t, http.StatusOK, w.Code)
	second := decode(t, w)
	assert.Len(t, second["results"], 1)
	assert.Nil(t, second["next"])
	assert.Equal(t, "http://example.com/groups/", second["previous"])

	for _, q := range []string{"3", "0", "abc"} {
		w = c.do(http.MethodGet, "/groups/?page="+q, ann, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, q)
		assert.JSONEq(t, `{"success":false,"error":"Invalid page."}`, w.Body.String())
	}

	w = c.do(http.MethodGet, "/groups/1/posts/", ann, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0,"next":null,"previous":null,"results":[]}`, w.Body.String())
}

func TestPostsAndComments(t *testing.T) {
	c := newClient(t)
	_, ann := c.signUp("ann@example.com", "Rome")
	_, bob := c.signUp("bob@example.com", "Rome")
	groupID := c.createGroup(ann, "Dogs")

	w := c.do(http.MethodPost, "/groups/999/posts/", bob, map[string]string{"title": "T", "text": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do(http.MethodPost, fmt.Sprintf("/groups/%d/posts/", groupID), bob, map[string]string{"title": "Walk", "text": "Sunday?"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	post := decode(t, w)
	assert.Equal(t, "Sunday?", post["text"])
	postPath := fmt.Sprintf("/posts/%d/", id(post))

	w = c.do(http.MethodPost, postPath+"comments/", ann, map[string]interface{}{"text": "Yes", "rating": "6"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = c.do(http.MethodPost, postPath+"comments/", ann, map[string]interface{}{"text": "Yes", "rating": "5"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	comment := decode(t, w)
	commentPath := fmt.Sprintf("/comments/%d/", id(comment))

	w = c.do(http.MethodGet, postPath, ann, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode(t, w)
	assert.Len(t, detail["comments"], 1)
	assert.Equal(t, "Dogs", detail["group"].(map[string]interface{})["name"])

	w = c.do(http.MethodPut, postPath, ann, map[string]string{"title": "Mine", "text": "now"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"You are not the owner of the post"}`, w.Body.String())

	w = c.do(http.MethodPut, postPath, bob, map[string]string{"title": "Walk"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = c.do(http.MethodPatch, postPath, bob, map[string]string{"text": "Saturday?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Saturday?", decode(t, w)["text"])

	w = c.do(http.MethodPut, commentPath, ann, map[string]string{"text": "Maybe"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	edited := decode(t, w)
	assert.Equal(t, "Maybe", edited["text"])
	assert.Nil(t, edited["rating"])
	assert.Equal(t, "Walk", edited["post"].(map[string]interface{})["title"])

	w = c.do(http.MethodDelete, postPath, bob, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, postPath, bob, nil).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, commentPath, bob, nil).Code)
}

func TestMeetingsAndAttendance(t *testing.T) {
	c := newClient(t)
	annID, ann := c.signUp("ann@example.com", "Rome")
	_, bob := c.signUp("bob@example.com", "Rome")
	groupID := c.createGroup(ann, "Dogs")

	w := c.do(http.MethodPost, fmt.Sprintf("/groups/%d/meetings/", groupID), ann, map[string]string{
		"title": "Park", "location": "Villa Borghese", "time": "2030-05-01T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	meeting := decode(t, w)
	assert.Equal(t, "2030-05-01T10:00:00Z", meeting["time"])
	meetingPath := fmt.Sprintf("/meetings/%d/", id(meeting))

	w = c.do(http.MethodPost, meetingPath+"attend", ann, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	attendees := decode(t, w)["attendees"].([]interface{})
	require.Len(t, attendees, 1)
	assert.EqualValues(t, annID, attendees[0].(map[string]interface{})["id"])

	w = c.do(http.MethodPost, meetingPath+"attend/", ann, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"You are already attending this meeting"}`, w.Body.String())

	w = c.do(http.MethodGet, fmt.Sprintf("/users/%d/", annID), bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["attending_meetings"], 1)

	w = c.do(http.MethodPost, meetingPath+"unattend", ann, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, decode(t, w)["attendees"])

	w = c.do(http.MethodPost, meetingPath+"unattend", ann, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"You are already not attending this meeting"}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/meetings/999/attend", ann, nil).Code)

	w = c.do(http.MethodPatch, meetingPath, bob, map[string]string{"title": "Mine"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, meetingPath+"attend", bob, nil).Code)
	w = c.do(http.MethodDelete, fmt.Sprintf("/groups/%d/", groupID), ann, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, meetingPath, bob, nil).Code)
}

func TestAnimals(t *testing.T) {
	c := newClient(t)
	annID, ann := c.signUp("ann@example.com", "Rome")
	_, bob := c.signUp("bob@example.com", "Rome")

	w := c.do(http.MethodPost, "/animals/", ann, map[string]interface{}{"name": "Tweety", "type": "bird"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodPost, "/animals/", ann, map[string]interface{}{"name": "Rex", "type": "dog", "breed": "Beagle"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	animal := decode(t, w)
	assert.Equal(t, "ann@example.com", animal["user"].(map[string]interface{})["email"])
	animalPath := fmt.Sprintf("/animals/%d/", id(animal))

	w = c.do(http.MethodGet, fmt.Sprintf("/users/%d/animals/", annID), bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/users/999/animals/", bob, nil).Code)

	w = c.do(http.MethodDelete, animalPath, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"You are not the owner of the animal"}`, w.Body.String())

	w = c.do(http.MethodPut, animalPath, ann, map[string]interface{}{"name": "Rex", "type": "cat"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)
	assert.Equal(t, "cat", updated["type"])
	assert.Nil(t, updated["breed"])

	assert.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, animalPath, ann, nil).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, animalPath, ann, nil).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/animals/abc/", ann, nil).Code)
}

func TestSignInLockout(t *testing.T) {
	c := newClientWith(t, func(cfg *config.AppConfig) {
		cfg.SignInMaxFailuresPerHour = 2
		cfg.SignInBanMinutes = 10
	})
	c.signUp("ann@example.com", "Rome")

	wrong := map[string]string{"email": "ann@example.com", "password": "nope"}
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/sign_in/", "", wrong).Code)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/sign_in/", "", wrong).Code)

	right := map[string]string{"email": "ann@example.com", "password": "pa55word"}
	w := c.do(http.MethodPost, "/sign_in/", "", right)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestPlainTextFieldsKeepWhatWasTyped(t *testing.T) {
	c := newClient(t)

	w := c.do(http.MethodPost, "/sign_up/", "", map[string]interface{}{
		"email": "ob@example.com", "password": "pa55word", "first_name": "O'Brien", "last_name": "Smith & Sons",
		"address_city": "Rome",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "O'Brien", body["first_name"])
	assert.Equal(t, "Smith & Sons", body["last_name"])

	w = c.do(http.MethodPost, "/sign_in/", "", map[string]string{"email": "ob@example.com", "password": "pa55word"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode(t, w)["access"].(string)

	w = c.do(http.MethodPost, "/groups/", token, map[string]string{"name": "Cats & Dogs <b>club</b>"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	group := decode(t, w)
	assert.Equal(t, "Cats & Dogs club", group["name"])

	w = c.do(http.MethodPost, fmt.Sprintf("/groups/%d/posts/", id(group)), token, map[string]string{
		"title": "1 < 2", "text": "<p>walk</p><script>x</script>",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	post := decode(t, w)
	assert.Equal(t, "1 < 2", post["title"])
	assert.Equal(t, "<p>walk</p>", post["text"])

	w = c.do(http.MethodPost, "/animals/", token, map[string]string{"name": "Rex & Co", "type": "dog"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Rex & Co", decode(t, w)["name"])
}

func TestFieldsBlankOnceCleanedAreRejected(t *testing.T) {
	c := newClient(t)

	w := c.do(http.MethodPost, "/sign_up/", "", map[string]interface{}{
		"email": "blank@example.com", "password": "pa55word", "first_name": "   ", "last_name": "<i></i>",
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	msg := decode(t, w)["error"].(string)
	assert.Contains(t, msg, "first_name: This field may not be blank.")
	assert.Contains(t, msg, "last_name: This field may not be blank.")

	_, ann := c.signUp("ann@example.com", "Rome")

	w = c.do(http.MethodPost, "/groups/", ann, map[string]string{"name": "<b></b>"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"name: This field may not be blank."}`, w.Body.String())

	groupID := c.createGroup(ann, "Dogs")
	w = c.do(http.MethodPut, fmt.Sprintf("/groups/%d/", groupID), ann, map[string]string{"name": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodPost, fmt.Sprintf("/groups/%d/posts/", groupID), ann, map[string]string{
		"title": "<script>x</script>", "text": "ok",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "title: This field may not be blank.")

	w = c.do(http.MethodPost, fmt.Sprintf("/groups/%d/posts/", groupID), ann, map[string]string{"title": "Walk", "text": "Anyone?"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	postID := id(decode(t, w))
	w = c.do(http.MethodPatch, fmt.Sprintf("/posts/%d/", postID), ann, map[string]string{"title": "<b></b>"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = c.do(http.MethodGet, fmt.Sprintf("/posts/%d/", postID), ann, nil)
	assert.Equal(t, "Walk", decode(t, w)["title"])

	w = c.do(http.MethodPost, fmt.Sprintf("/posts/%d/comments/", postID), ann, map[string]string{"text": "<script>x</script>"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodPost, fmt.Sprintf("/groups/%d/meetings/", groupID), ann, map[string]string{
		"title": "<i></i>", "location": "Park", "time": "2030-05-01T10:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodPost, "/animals/", ann, map[string]string{"name": "<i></i>", "type": "cat"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"name: This field may not be blank."}`, w.Body.String())
}
