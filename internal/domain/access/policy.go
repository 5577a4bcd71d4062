// Package access は求人・応募リソースに対するアクセス制御の判定ロジックを提供します。
// I/Oを持たない純粋な関数のみで構成され、各ユースケースから呼び出されます。
package access

import "errors"

// ErrForbidden はロールまたは所有者チェックに失敗した場合に返されます。
var ErrForbidden = errors.New("access denied")

// Role はユーザーのロールを表します。登録時に確定し、以後変更されません。
type Role string

const (
	RoleEmployer  Role = "employer"
	RoleJobseeker Role = "jobseeker"
)

// Valid は既知のロールかどうかを返します。
func (r Role) Valid() bool {
	return r == RoleEmployer || r == RoleJobseeker
}

// Caller は検証済みトークンから取り出した呼び出し元の識別情報です。
type Caller struct {
	UserID uint
	Role   Role
}

// Action は判定対象の操作です。
type Action string

const (
	CreateJob               Action = "job:create"
	UpdateJob               Action = "job:update"
	DeleteJob               Action = "job:delete"
	ListOwnJobs             Action = "job:list_own"
	Apply                   Action = "application:create"
	ListApplications        Action = "application:list"
	ViewApplication         Action = "application:view"
	UpdateApplicationStatus Action = "application:update_status"
	UploadResume            Action = "resume:upload"
)

// Resource は判定に必要なリソース側の所有情報です。
// OwnerID は求人を作成した企業ユーザー、AuthorID は応募を作成した求職者ユーザーを指します。
type Resource struct {
	OwnerID  uint
	AuthorID uint
}

// ownership はロール通過後に適用する所有者チェックの種類です。
type ownership int

const (
	ownerNone ownership = iota
	ownerEmployer
	ownerEmployerOrAuthor
)

type rule struct {
	roles []Role
	owner ownership
}

var policy = map[Action]rule{
	CreateJob:               {roles: []Role{RoleEmployer}},
	UpdateJob:               {roles: []Role{RoleEmployer}, owner: ownerEmployer},
	DeleteJob:               {roles: []Role{RoleEmployer}, owner: ownerEmployer},
	ListOwnJobs:             {roles: []Role{RoleEmployer}},
	Apply:                   {roles: []Role{RoleJobseeker}},
	ListApplications:        {roles: []Role{RoleEmployer, RoleJobseeker}},
	ViewApplication:         {roles: []Role{RoleEmployer, RoleJobseeker}, owner: ownerEmployerOrAuthor},
	UpdateApplicationStatus: {roles: []Role{RoleEmployer}, owner: ownerEmployer},
	UploadResume:            {roles: []Role{RoleJobseeker}},
}

// CanPerform はロールだけで操作が許可され得るかを返します。
// リソースを読み込む前の事前チェックに使います。
func CanPerform(role Role, action Action) bool {
	r, ok := policy[action]
	if !ok {
		return false
	}
	for _, allowed := range r.roles {
		if role == allowed {
			return true
		}
	}
	return false
}

// Authorize はロールと所有者の両方を検証し、許可されない場合はErrForbiddenを返します。
func Authorize(caller Caller, action Action, res Resource) error {
	if !CanPerform(caller.Role, action) {
		return ErrForbidden
	}
	switch policy[action].owner {
	case ownerEmployer:
		if caller.UserID == 0 || caller.UserID != res.OwnerID {
			return ErrForbidden
		}
	case ownerEmployerOrAuthor:
		switch caller.Role {
		case RoleJobseeker:
			if caller.UserID == 0 || caller.UserID != res.AuthorID {
				return ErrForbidden
			}
		case RoleEmployer:
			if caller.UserID == 0 || caller.UserID != res.OwnerID {
				return ErrForbidden
			}
		}
	}
	return nil
}
