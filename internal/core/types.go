package core

import "rostercore/pkg/domain"

type (
	EntityType         = domain.EntityType
	Action             = domain.Action
	Member             = domain.Member
	RosterEntry        = domain.RosterEntry
	Change             = domain.Change
	Violation          = domain.Violation
	Result             = domain.Result
	RulesEngine        = domain.RulesEngine
	RuleViolationError = domain.RuleViolationError
	FieldErrors        = domain.FieldErrors
	ErrNotFound        = domain.ErrNotFound
)

const (
	EntityMember      = domain.EntityMember
	EntityRosterEntry = domain.EntityRosterEntry
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	ActionCreate = domain.ActionCreate
	ActionUpdate = domain.ActionUpdate
	ActionDelete = domain.ActionDelete
)
