package box

import "context"

// Repository defines the data access contract.
type Repository interface {
	ListBoxes(context context.Context, filter Filter, limit, offset int) ([]*Box, int, error)
	GetBox(context context.Context, id string) (*Box, error)
	GetActiveBox(context context.Context, titleID string) (*Box, error)
	CreateBox(context context.Context, box *Box) error
	ActivateBox(context context.Context, id string) (*Box, error)
}
