// Package domain contains the core entities and value objects of the
// review workflow: references, duplicate clusters, screening decisions,
// and the derived PRISMA flow counts. It represents the heart of the
// system, independent of any specific infrastructure or delivery
// mechanism.
package domain
