// Package deps defines the dependency identity records produced by the
// inventory scanner.
//
// # Overview
//
// A [Dependency] names one archive loaded by the host process: its name,
// version, optional vendor, the archive path it was read from, and the
// [Method] (metadata source) that produced it. Dependencies are plain
// comparable values. A [Set] deduplicates them by name, version, vendor and
// method: two archives that resolve to the same identity collapse into one
// entry, while records differing only in Method stay distinct.
//
// # Resolvers
//
// A [Resolver] turns an archive path into a Dependency. Format-specific
// resolvers live in subpackages:
//
//   - [java]: jar/war/ear archives (pom.properties, MANIFEST.MF)
//
// Resolvers distinguish three results:
//
//   - a Dependency: metadata was found
//   - (nil, nil): the archive opened but carried no usable metadata
//   - an error: the archive could not be read; see [errors] for the codes
//
// [java]: github.com/matzehuels/depinv/pkg/deps/java
// [errors]: github.com/matzehuels/depinv/pkg/errors
package deps
