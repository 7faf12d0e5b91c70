// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import "context"

// Repository abstracts genre persistence.
type Repository interface {
	List(context context.Context) ([]*Genre, error)
	GetByID(context context.Context, id int64) (*Genre, error)
	Create(context context.Context, genre *Genre) error
	Update(context context.Context, genre *Genre) error
	SoftDelete(context context.Context, id int64) error
}
