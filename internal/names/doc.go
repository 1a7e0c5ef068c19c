// Package names searches and resolves the localized first/last name table.
//
// The table is a flat ordered list whose index is the persistent name id that
// records carry in firstNameId and lastNameId. Cache memoizes one Resolver per
// language and is owned by whoever constructs it.
package names
