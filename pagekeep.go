// Package pagekeep captures readable page content from whitelisted domains
// and ships it to a local content server. It also provides a companion view
// to browse, filter and delete captured items.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, goquery/).
package pagekeep
