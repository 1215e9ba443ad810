package docker

import (
	"github.com/docker/docker/api/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("container views", func() {

	DescribeTable("names",
		func(names []string, expected string) {
			Expect(ContainerName(names)).To(Equal(expected))
		},
		Entry("strips the leading slash", []string{"/web"}, "web"),
		Entry("strips only one slash", []string{"//web"}, "/web"),
		Entry("keeps unprefixed names", []string{"web"}, "web"),
		Entry("uses the first name", []string{"/web", "/alias"}, "web"),
		Entry("no names", nil, ""),
	)

	DescribeTable("ports",
		func(ports []types.Port, expected string) {
			Expect(FormatPorts(ports)).To(Equal(expected))
		},
		Entry("single port", []types.Port{{PublicPort: 8080, PrivatePort: 80, Type: "tcp"}}, "8080->80/tcp"),
		Entry("keeps input order",
			[]types.Port{
				{PublicPort: 8443, PrivatePort: 443, Type: "tcp"},
				{PublicPort: 8080, PrivatePort: 80, Type: "tcp"},
				{PublicPort: 5353, PrivatePort: 53, Type: "udp"},
			},
			"8443->443/tcp, 8080->80/tcp, 5353->53/udp"),
		Entry("unpublished port", []types.Port{{PrivatePort: 6379, Type: "tcp"}}, "0->6379/tcp"),
		Entry("no ports", nil, ""),
		Entry("empty ports", []types.Port{}, ""),
	)

	It("projects a list entry", func() {
		v := ToView(types.Container{
			ID:     "abcdef1234567890",
			Names:  []string{"/web"},
			Image:  "nginx:latest",
			State:  "running",
			Status: "Up 2 minutes",
			Ports:  []types.Port{{PrivatePort: 80, PublicPort: 8080, Type: "tcp"}},
		})
		Expect(v.ID).To(Equal("abcdef1234567890"))
		Expect(v.Name).To(Equal("web"))
		Expect(v.Image).To(Equal("nginx:latest"))
		Expect(v.State).To(Equal("running"))
		Expect(v.Status).To(Equal("Up 2 minutes"))
		Expect(v.Ports).To(Equal("8080->80/tcp"))
	})

})
