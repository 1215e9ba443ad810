package docker

import (
	"context"
	"errors"

	"github.com/docker/docker/api/types"
	"github.com/melih/dockwatch/internal/test/fakeengine"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("self container detection", func() {

	hostname := func(name string) Option {
		return WithHostname(func() (string, error) { return name, nil })
	}

	It("matches the hostname as id prefix, ignoring case", func() {
		engine := fakeengine.New(
			types.Container{ID: "0123456789abcdef", Names: []string{"/web"}},
			types.Container{ID: "a1b2c3d4e5f6aabbccdd", Names: []string{"/dockwatch"}},
		)
		id, ok := New(engine, hostname("A1B2C3D4E5F6")).SelfContainerID(context.Background())
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal("a1b2c3d4e5f6aabbccdd"))
	})

	It("matches the hostname as exact container name", func() {
		engine := fakeengine.New(
			types.Container{ID: "0123456789abcdef", Names: []string{"/web"}},
			types.Container{ID: "fedcba9876543210", Names: []string{"/dockwatch"}},
		)
		id, ok := New(engine, hostname("dockwatch")).SelfContainerID(context.Background())
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal("fedcba9876543210"))

		_, ok = New(engine, hostname("DockWatch")).SelfContainerID(context.Background())
		Expect(ok).To(BeFalse())
	})

	It("returns the first match", func() {
		engine := fakeengine.New(
			types.Container{ID: "abc123abc123000", Names: []string{"/one"}},
			types.Container{ID: "abc123abc123111", Names: []string{"/two"}},
		)
		id, ok := New(engine, hostname("abc123abc123")).SelfContainerID(context.Background())
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal("abc123abc123000"))
	})

	It("returns nothing when no container matches", func() {
		engine := fakeengine.New(types.Container{ID: "0123456789abcdef", Names: []string{"/web"}})
		id, ok := New(engine, hostname("laptop")).SelfContainerID(context.Background())
		Expect(ok).To(BeFalse())
		Expect(id).To(BeEmpty())
	})

	It("swallows list errors", func() {
		engine := fakeengine.New(types.Container{ID: "a1b2c3d4e5f6", Names: []string{"/web"}})
		engine.ListErr = errors.New("dial unix /var/run/docker.sock: connect: no such file or directory")
		id, ok := New(engine, hostname("a1b2c3d4e5f6")).SelfContainerID(context.Background())
		Expect(ok).To(BeFalse())
		Expect(id).To(BeEmpty())
	})

	It("swallows hostname errors without asking the engine", func() {
		engine := fakeengine.New(types.Container{ID: "a1b2c3d4e5f6"})
		a := New(engine, WithHostname(func() (string, error) { return "", errors.New("no uts") }))
		_, ok := a.SelfContainerID(context.Background())
		Expect(ok).To(BeFalse())
		Expect(engine.Calls()).To(BeEmpty())
	})

	It("does not treat an empty hostname as matching everything", func() {
		engine := fakeengine.New(types.Container{ID: "a1b2c3d4e5f6"})
		_, ok := New(engine, hostname("  ")).SelfContainerID(context.Background())
		Expect(ok).To(BeFalse())
	})

	It("identifies self among a self and a foreign container after listing", func() {
		engine := fakeengine.New(
			types.Container{ID: "a1b2c3d4e5f6" + "1234567890", Names: []string{"/not-self"}},
			types.Container{ID: "otherid", Names: []string{"/web"}},
		)
		a := New(engine, hostname("a1b2c3d4e5f6"))
		views, err := a.ListContainers(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(views).To(HaveLen(2))

		id, ok := a.SelfContainerID(context.Background())
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal("a1b2c3d4e5f61234567890"))
	})

	Context("snapshots", func() {

		It("resolves self from a single list call", func() {
			engine := fakeengine.New(
				types.Container{ID: "0123456789abcdef", Names: []string{"/web"}},
				types.Container{ID: "a1b2c3d4e5f6aabbccdd", Names: []string{"/dockwatch"}},
			)
			snap, err := New(engine, hostname("a1b2c3d4e5f6")).Snapshot(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.SelfID).To(Equal("a1b2c3d4e5f6aabbccdd"))
			Expect(snap.Containers).To(HaveLen(2))
			Expect(engine.Count(fakeengine.CallList)).To(Equal(1))
		})

		It("keeps listing when self detection fails", func() {
			engine := fakeengine.New(types.Container{ID: "0123456789abcdef", Names: []string{"/web"}})
			a := New(engine, WithHostname(func() (string, error) { return "", errors.New("no uts") }))
			snap, err := a.Snapshot(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(snap.SelfID).To(BeEmpty())
			Expect(snap.Containers).To(HaveLen(1))
		})

		It("propagates list errors", func() {
			engine := fakeengine.New()
			engine.ListErr = errors.New("connection refused")
			_, err := New(engine, hostname("a1b2c3d4e5f6")).Snapshot(context.Background())
			Expect(err).To(MatchError(ContainSubstring("connection refused")))
		})

	})

})
