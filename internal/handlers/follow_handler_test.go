package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/tahmid11/socialbook/backend/internal/models"
)

func followRequest(env *testEnv, actor *models.User, targetUsername string) (int, error) {
	c, rec := env.request(http.MethodPost, "/api/v1/accounts/follow/"+targetUsername, "", actor.ID, actor.Username)
	c.SetParamNames("username")
	c.SetParamValues(targetUsername)
	err := env.followHandler.FollowUser(c)
	if err == nil {
		return rec.Code, nil
	}
	return 0, err
}

func TestFollowUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	c, rec := env.request(http.MethodPost, "/api/v1/accounts/follow/bob", "", alice.ID, alice.Username)
	c.SetParamNames("username")
	c.SetParamValues("bob")
	if err := env.followHandler.FollowUser(c); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Counts struct {
			FollowersCount int64 `json:"followers_count"`
			FollowingCount int64 `json:"following_count"`
		} `json:"counts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Counts.FollowingCount != 1 {
		t.Errorf("expected following_count 1, got %d", resp.Counts.FollowingCount)
	}

	// A follow notification reaches the target.
	if n := env.countNotifications(t, bob.ID, models.VerbFollow); n != 1 {
		t.Errorf("expected 1 follow notification for bob, got %d", n)
	}
}

func TestFollowSelfRejected(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	c, rec := env.request(http.MethodPost, "/api/v1/accounts/follow/alice", "", alice.ID, alice.Username)
	c.SetParamNames("username")
	c.SetParamValues("alice")
	err := env.followHandler.FollowUser(c)
	if status := httpStatus(t, err, rec); status != http.StatusBadRequest {
		t.Errorf("expected 400 for self-follow, got %d", status)
	}

	following, err2 := env.followRepo.GetFollowing(alice.ID)
	if err2 != nil {
		t.Fatalf("get following: %v", err2)
	}
	if len(following) != 0 {
		t.Errorf("self-follow must never create an edge, found %d", len(following))
	}
}

func TestFollowDuplicateRejected(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	env.createUser(t, "bob")

	if _, err := followRequest(env, alice, "bob"); err != nil {
		t.Fatalf("first follow failed: %v", err)
	}

	_, err := followRequest(env, alice, "bob")
	if status := errStatus(t, err); status != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate follow, got %d", status)
	}
}

func TestFollowUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := followRequest(env, alice, "nobody")
	if status := errStatus(t, err); status != http.StatusNotFound {
		t.Errorf("expected 404 for unknown username, got %d", status)
	}
}

func TestUnfollow(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	if _, err := followRequest(env, alice, "bob"); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	c, rec := env.request(http.MethodPost, "/api/v1/accounts/unfollow/bob", "", alice.ID, alice.Username)
	c.SetParamNames("username")
	c.SetParamValues("bob")
	if err := env.followHandler.UnfollowUser(c); err != nil {
		t.Fatalf("unfollow failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	// Unfollow emits no notification; only the original follow one exists.
	if n := env.countNotifications(t, bob.ID, models.VerbFollow); n != 1 {
		t.Errorf("expected 1 notification, got %d", n)
	}

	// Unfollowing again reports a missing edge.
	c2, rec2 := env.request(http.MethodPost, "/api/v1/accounts/unfollow/bob", "", alice.ID, alice.Username)
	c2.SetParamNames("username")
	c2.SetParamValues("bob")
	err := env.followHandler.UnfollowUser(c2)
	if status := httpStatus(t, err, rec2); status != http.StatusBadRequest {
		t.Errorf("expected 400 for unfollow without edge, got %d", status)
	}
}

func TestFollowerAndFollowingLists(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	for _, target := range []string{"bob", "carol"} {
		if _, err := followRequest(env, alice, target); err != nil {
			t.Fatalf("follow %s failed: %v", target, err)
		}
	}
	if _, err := followRequest(env, bob, "carol"); err != nil {
		t.Fatalf("follow failed: %v", err)
	}

	c, rec := env.request(http.MethodGet, "/api/v1/accounts/following", "", alice.ID, alice.Username)
	if err := env.followHandler.GetFollowing(c); err != nil {
		t.Fatalf("get following: %v", err)
	}
	var followingResp struct {
		Following []models.User `json:"following"`
		Count     int           `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &followingResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if followingResp.Count != 2 {
		t.Errorf("expected alice to follow 2 users, got %d", followingResp.Count)
	}

	c2, rec2 := env.request(http.MethodGet, "/api/v1/accounts/followers", "", carol.ID, carol.Username)
	if err := env.followHandler.GetFollowers(c2); err != nil {
		t.Fatalf("get followers: %v", err)
	}
	var followersResp struct {
		Followers []models.User `json:"followers"`
		Count     int           `json:"count"`
	}
	if err := json.Unmarshal(rec2.Body.Bytes(), &followersResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if followersResp.Count != 2 {
		t.Errorf("expected carol to have 2 followers, got %d", followersResp.Count)
	}
}
