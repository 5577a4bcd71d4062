package access

// ApplicationScope は呼び出し元が閲覧できる応募の範囲を表します。
// ゼロ値のフィールドは「その条件で絞り込まない」ことを意味します。
type ApplicationScope struct {
	// ApplicantID が設定されている場合、その求職者の応募のみ対象になります。
	ApplicantID uint
	// EmployerID が設定されている場合、その企業ユーザーが所有する求人への応募のみ対象になります。
	EmployerID uint
	// JobID が設定されている場合、その求人への応募のみ対象になります。
	JobID uint
	// Empty がtrueの場合、結果は常に空です。
	Empty bool
}

// ScopeApplications はロールに応じた応募一覧の基本スコープを返します。
//   - jobseeker: 自分が作成した応募のみ
//   - employer: 自分が所有する求人への応募のみ
func ScopeApplications(caller Caller) (ApplicationScope, error) {
	if caller.UserID == 0 || !CanPerform(caller.Role, ListApplications) {
		return ApplicationScope{}, ErrForbidden
	}
	switch caller.Role {
	case RoleJobseeker:
		return ApplicationScope{ApplicantID: caller.UserID}, nil
	case RoleEmployer:
		return ApplicationScope{EmployerID: caller.UserID}, nil
	}
	return ApplicationScope{}, ErrForbidden
}

// Narrow はクエリパラメータ（userId / jobId）でスコープをさらに絞り込みます。
// 0は未指定として扱います。基本スコープを広げることはなく、
// 矛盾する指定は空の結果になります。
func (s ApplicationScope) Narrow(userID, jobID uint) ApplicationScope {
	out := s
	if userID != 0 {
		if s.ApplicantID != 0 && s.ApplicantID != userID {
			out.Empty = true
		}
		out.ApplicantID = userID
	}
	if jobID != 0 {
		if s.JobID != 0 && s.JobID != jobID {
			out.Empty = true
		}
		out.JobID = jobID
	}
	return out
}
