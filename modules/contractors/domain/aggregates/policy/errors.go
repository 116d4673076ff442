package policy

import "github.com/facilops/facilops/pkg/serrors"

var (
	ErrNotFound  = serrors.NewError("POLICY_NOT_FOUND", "policy not found", "")
	ErrDuplicate = serrors.NewError("POLICY_DUPLICATE", "policy already exists", "")
)
