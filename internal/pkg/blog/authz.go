package blog

import (
	"github.com/StefanHaring/InkPress/app/models"
)

// authorizeCreate allows any authenticated identity to create posts.
func authorizeCreate(caller string) error {
	if caller == "" {
		return ErrUnauthenticated
	}
	return nil
}

// authorizeMutate gates update/delete. The checks run in a fixed order:
// missing identity, then existence, then ownership. A non-owner probing a
// missing slug sees the same 404 an owner would.
func authorizeMutate(post *models.BlogPost, caller string) error {
	if caller == "" {
		return ErrUnauthenticated
	}
	if post == nil {
		return ErrNotFound
	}
	if post.AuthorID != caller {
		return ErrForbidden
	}
	return nil
}
