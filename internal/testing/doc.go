// Package testing provides test utilities, builders, and fakes for unit and
// scenario tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - FakeBackend: in-memory implementation of the cluster and node ports
//   - MockClusterGateway, MockNodesProvider, MockFileWriter: testify mocks
//   - RequestBuilder: fluent builder for deploy requests
//   - PoolFixture: pre-populated node pools for common scenarios
//
// Usage:
//
//	backend := testing.NewFakeBackend()
//	backend.AddNode(testing.Node("n1", model.NodeStatusAvailable))
//
//	req := testing.NewRequestBuilder().
//	    WithWorkerIDs("n1").
//	    Build()
package testing
