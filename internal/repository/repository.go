package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g. postgres) inside this directory.
// Every application/attachment operation takes the owning user's id and
// applies it as part of the query predicate; callers cannot bypass the
// owner scope.

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// Total is the number of rows matching the filter before pagination.
type PageResult[T any] struct {
	Items []T
	Total int
}
