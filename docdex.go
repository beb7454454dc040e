// Package docdex turns a documentation website into a locally queryable
// knowledge base. It discovers a site's navigation structure, crawls the
// documentation pages it finds, groups and summarizes them with an external
// model, and serves the result through keyword and vector search.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package docdex
