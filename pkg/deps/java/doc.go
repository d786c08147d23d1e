// Package java resolves dependency identity from jar-style archives.
//
// # Overview
//
// [Resolver] implements [deps.Resolver] for zip archives laid out like jars
// (jar, war, ear). It opens the archive once and tries four metadata
// sources in strict precedence order, returning the first that yields both a
// name and a version:
//
//  1. pom.properties: the first entry under META-INF whose name ends in
//     pom.properties (artifactId, version, groupId)
//  2. MANIFEST.MF Implementation-Title / -Version / -Vendor-Id (falling
//     back to Implementation-Vendor)
//  3. MANIFEST.MF Specification-Title / -Version / -Vendor
//  4. MANIFEST.MF Bundle-SymbolicName / Bundle-Version / Bundle-Vendor
//
// The manifest is parsed at most once per archive and shared by the three
// manifest strategies. Manifest attribute names are case-insensitive.
//
// # Errors
//
// Resolve reports archive-level failures with codes from [errors]:
//
//   - ARCHIVE_MISSING: the path no longer exists
//   - ARCHIVE_OPEN: the file exists but is not a readable zip
//
// A malformed pom.properties or manifest only disqualifies the strategies
// reading it; resolution continues with the next one and the failure is
// logged at debug level.
//
// [deps.Resolver]: github.com/matzehuels/depinv/pkg/deps.Resolver
// [errors]: github.com/matzehuels/depinv/pkg/errors
package java
