// Package source loads timeline datasets.
//
// Every loader implements [Source]:
//
//   - [FileSource]: a local .json, .yaml/.yml or .toml file
//   - [HTTPSource]: the timeline API, falling back to the profile list and
//     then to the bundled sample when the API is unavailable
//   - [MongoSource]: "people" and "periods" collections in MongoDB
//   - [SampleSource]: the dataset embedded in the binary
//
// [Open] picks a loader from a location string. Loaders read transport
// records ([RawPerson]) that may carry their names and dates in several
// legacy fields; [Normalize] turns them into [timeline.Person] values and
// [NormalizePeriods] validates the period list, so everything downstream
// sees one clean shape.
package source
