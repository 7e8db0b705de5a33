// Package kernel provides the shared value objects of the POD domain.
//
// The package includes:
//   - UUID: identifier of jobs and their items
//   - Contact: a party of a delivery (sender, receiver or courier)
//   - Location: a postal address a parcel leaves from or goes to
//
// All values are immutable and can only be obtained through their constructors;
// zero values fail Validate.
package kernel
