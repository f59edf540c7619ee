package audit

import "context"

type Service interface {
	List(ctx context.Context, filter Filter) (ListEntriesResponse, error)
}
