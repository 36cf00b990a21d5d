package orchestrator_test

import (
	"context"

	"github.com/go-logr/logr/funcr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/colonyctl/internal/gateway"
	"github.com/imamik/colonyctl/internal/model"
	"github.com/imamik/colonyctl/internal/orchestrator"
	colonytest "github.com/imamik/colonyctl/internal/testing"
)

var _ = Describe("Cluster orchestration", func() {
	var (
		ctx     context.Context
		fixture *colonytest.PoolFixture
		backend *colonytest.FakeBackend
		svc     *orchestrator.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		fixture = colonytest.NewPoolFixture()
		backend = fixture.Backend()
		logger := funcr.New(func(prefix, args string) {
			GinkgoWriter.Println(prefix, args)
		}, funcr.Options{Verbosity: 1})
		svc = orchestrator.New(backend, backend,
			orchestrator.WithTimeouts(colonytest.FastTimeouts()),
			orchestrator.WithLogger(logger),
		)
	})

	Describe("DeployCluster", func() {
		It("deploys an available worker", func() {
			fixture.Available("n1")

			result, err := svc.DeployCluster(ctx, colonytest.NewRequestBuilder().WithWorkerIDs("n1").Build())

			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsSuccess()).To(BeTrue())
			Expect(result.Issues).To(BeEmpty())
			Expect(result.DeployedCluster.Nodes).To(HaveLen(1))
			Expect(result.DeployedCluster.Nodes[0].ID).To(Equal("n1"))
			Expect(result.DeployedCluster.Nodes[0].Role).To(Equal(model.RoleWorker))
		})

		It("waits for a discovering node and includes it", func() {
			// The initial snapshot and the first poll see DISCOVERING.
			fixture.DiscoveringUntil("n1", 2)

			result, err := svc.DeployCluster(ctx, colonytest.NewRequestBuilder().WithWorkerIDs("n1").Build())

			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsSuccess()).To(BeTrue())
			Expect(colonytest.AssignedIDs(result.DeployedCluster.Nodes)).To(Equal([]string{"n1"}))
			Expect(backend.Calls("ListNodes")).To(BeNumerically(">=", 2))
		})

		It("creates nothing when every node is missing", func() {
			result, err := svc.DeployCluster(ctx, colonytest.NewRequestBuilder().WithWorkerIDs("missing-id").Build())

			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsFailure()).To(BeTrue())
			Expect(result.DeployedCluster).To(BeNil())
			Expect(result.Issues).To(HaveLen(1))
			Expect(result.Issues[0].NodeID).To(Equal("missing-id"))
			Expect(result.Issues[0].Reason).To(ContainSubstring("not found"))
			Expect(backend.Calls("CreateCluster")).To(BeZero())
		})

		It("deploys the resolvable subset", func() {
			fixture.Available("n1")

			result, err := svc.DeployCluster(ctx, colonytest.NewRequestBuilder().WithWorkerIDs("n1", "missing-id").Build())

			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsPartiallySuccessful()).To(BeTrue())
			Expect(colonytest.AssignedIDs(result.DeployedCluster.Nodes)).To(Equal([]string{"n1"}))
			Expect(result.Issues).To(HaveLen(1))
			Expect(result.Issues[0].NodeID).To(Equal("missing-id"))
		})

		It("creates a cluster from imported nodes alone", func() {
			result, err := svc.DeployCluster(ctx, colonytest.NewRequestBuilder().
				WithControlPlaneSpecs(colonytest.Spec("cp-01")).
				Build())

			Expect(err).NotTo(HaveOccurred())
			Expect(result.DeployedCluster).NotTo(BeNil())
			Expect(result.DeployedCluster.Nodes).To(HaveLen(1))
			Expect(result.DeployedCluster.Nodes[0].Role).To(Equal(model.RoleControlPlane))
		})
	})

	Describe("RemoveNodes", func() {
		It("reports a failed removal without blocking the others", func() {
			fixture.ReadyCluster("c1", "n1", "n2")
			backend.RemoveErrors = map[string]error{
				"n2": &gateway.CommandError{Operation: "remove node", StatusCode: 500, Message: "drain failed"},
			}

			result, err := svc.RemoveNodes(ctx, "c1", []string{"n1", "n2"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Nodes).To(Equal([]model.NodeRef{{NodeID: "n1"}}))
			Expect(result.Issues).To(HaveLen(1))
			Expect(result.Issues[0].NodeID).To(Equal("n2"))
			Expect(result.IsPartiallySuccessful()).To(BeTrue())
		})
	})

	Describe("result predicates", func() {
		DescribeTable("are mutually exclusive and exhaustive",
			func(result *model.DeployClusterResult) {
				set := 0
				for _, ok := range []bool{result.IsSuccess(), result.IsPartiallySuccessful(), result.IsFailure()} {
					if ok {
						set++
					}
				}
				Expect(set).To(Equal(1))
			},
			Entry("success", &model.DeployClusterResult{DeployedCluster: &model.ClusterWithNodes{}}),
			Entry("partial", &model.DeployClusterResult{
				DeployedCluster: &model.ClusterWithNodes{},
				Issues:          []model.NodeValidationIssue{{NodeID: "x", Reason: "r"}},
			}),
			Entry("failure", &model.DeployClusterResult{
				Issues: []model.NodeValidationIssue{{NodeID: "x", Reason: "r"}},
			}),
			Entry("failure without issues", &model.DeployClusterResult{}),
		)
	})
})
