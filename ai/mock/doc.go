// Package mock provides test doubles for the ai service contracts.
package mock
