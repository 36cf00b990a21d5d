// Package labels provides consistent labeling for clusters created through
// colonyctl.
//
// All labels use the colonyctl.io domain prefix and follow a builder pattern
// for constructing label sets from the feature flags of a deploy request.
package labels
