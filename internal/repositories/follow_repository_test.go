package repositories

import (
	"testing"

	"gorm.io/gorm"

	"github.com/tahmid11/socialbook/backend/internal/models"
)

func TestCreateFollowDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	if err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}); err != nil {
		t.Fatalf("first follow: %v", err)
	}
	err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
	if err != ErrAlreadyExists {
		t.Errorf("expected ErrAlreadyExists for duplicate edge, got %v", err)
	}

	// The reverse direction is a distinct edge.
	if err := repo.CreateFollow(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}); err != nil {
		t.Errorf("reverse follow rejected: %v", err)
	}
}

func TestDeleteFollowMissingEdge(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	if err := repo.DeleteFollow(alice.ID, bob.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for missing edge, got %v", err)
	}

	if err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := repo.DeleteFollow(alice.ID, bob.ID); err != nil {
		t.Errorf("delete existing edge: %v", err)
	}
	if err := repo.DeleteFollow(alice.ID, bob.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound on repeat delete, got %v", err)
	}
}

func TestFollowCountsAndIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	for _, target := range []uint{bob.ID, carol.ID} {
		if err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: target}); err != nil {
			t.Fatalf("follow: %v", err)
		}
	}
	if err := repo.CreateFollow(&models.Follow{FollowerID: bob.ID, FollowingID: carol.ID}); err != nil {
		t.Fatalf("follow: %v", err)
	}

	if n, err := repo.GetFollowingCount(alice.ID); err != nil || n != 2 {
		t.Errorf("expected alice following 2 (err %v), got %d", err, n)
	}
	if n, err := repo.GetFollowersCount(carol.ID); err != nil || n != 2 {
		t.Errorf("expected carol followers 2 (err %v), got %d", err, n)
	}

	ids, err := repo.GetFollowingIDs(alice.ID)
	if err != nil {
		t.Fatalf("get following ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 following ids, got %d", len(ids))
	}
	seen := map[uint]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if !seen[bob.ID] || !seen[carol.ID] {
		t.Errorf("following ids missing expected members: %v", ids)
	}

	ok, err := repo.IsFollowing(alice.ID, bob.ID)
	if err != nil || !ok {
		t.Errorf("expected alice to follow bob (err %v)", err)
	}
	ok, err = repo.IsFollowing(carol.ID, alice.ID)
	if err != nil || ok {
		t.Errorf("carol does not follow alice (err %v)", err)
	}
}

func TestFollowEdgesCascadeOnUserDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	if err := repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}); err != nil {
		t.Fatalf("follow: %v", err)
	}

	// The pragma is per connection, so the delete must run on the same one.
	err := db.Connection(func(tx *gorm.DB) error {
		if err := tx.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, bob.ID).Error
	})
	if err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if n, err := repo.GetFollowingCount(alice.ID); err != nil || n != 0 {
		t.Errorf("expected follow edge to cascade away (err %v), got %d", err, n)
	}
}
