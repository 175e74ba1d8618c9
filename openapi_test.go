package main_test

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("validates against the OpenAPI 3 schema", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("documents every permission and schedule route", func() {
		for _, path := range []string{
			"/users/{id}/permissions",
			"/users/{id}/permissions/copy",
			"/users/{id}/permissions/active",
			"/schedule/check",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})

	It("wraps every JSON response in the common envelope", func() {
		envelope := doc.Components.Schemas["Envelope"]
		Expect(envelope).NotTo(BeNil())
		Expect(envelope.Value.Required).To(ContainElements("status", "message"))
	})
})
