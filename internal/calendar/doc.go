// Package calendar implements the day-resolution dates used by the save
// file: long-form "Month Day, Year" text for the simulation clock and
// DD-MM-YYYY text for birth and death dates.
package calendar
