package stack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func renderManifests(t *testing.T, overrides map[string]string) []map[string]any {
	t.Helper()
	data, err := Manifests(testConfig(t, overrides))
	require.NoError(t, err)

	var docs []map[string]any
	for _, raw := range strings.Split(string(data), "---\n") {
		var doc map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(raw), &doc))
		docs = append(docs, doc)
	}
	return docs
}

func manifestByKind(t *testing.T, docs []map[string]any, kind, name string) map[string]any {
	t.Helper()
	for _, doc := range docs {
		meta, _ := doc["metadata"].(map[string]any)
		if doc["kind"] == kind && meta["name"] == name {
			return doc
		}
	}
	t.Fatalf("no %s manifest named %s", kind, name)
	return nil
}

func TestManifests_Inventory(t *testing.T) {
	docs := renderManifests(t, nil)
	require.Len(t, docs, 8)

	kinds := make(map[string]int)
	for _, doc := range docs {
		kind, _ := doc["kind"].(string)
		kinds[kind]++

		meta, ok := doc["metadata"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, manifestNamespace, meta["namespace"])
	}
	assert.Equal(t, map[string]int{
		"Bucket":             2,
		"Queue":              2,
		"Role":               1,
		"Function":           1,
		"EventSourceMapping": 1,
		"Policy":             1,
	}, kinds)
}

func TestManifests_Queues(t *testing.T) {
	docs := renderManifests(t, map[string]string{EnvTimeout: "120"})

	input := manifestByKind(t, docs, "Queue", "claud-input-queue-claud-agent")
	assert.Equal(t, "sqs.services.k8s.aws/v1alpha1", input["apiVersion"])
	spec := input["spec"].(map[string]any)
	assert.Equal(t, "720", spec["visibilityTimeout"])
	assert.Equal(t, "1209600", spec["messageRetentionPeriod"])

	output := manifestByKind(t, docs, "Queue", "claud-output-queue-claud-agent")
	spec = output["spec"].(map[string]any)
	assert.Equal(t, "30", spec["visibilityTimeout"])
}

func TestManifests_Function(t *testing.T) {
	docs := renderManifests(t, nil)

	fn := manifestByKind(t, docs, "Function", "claud-agent-claud-agent")
	assert.Equal(t, "lambda.services.k8s.aws/v1alpha1", fn["apiVersion"])

	spec := fn["spec"].(map[string]any)
	assert.Equal(t, "Image", spec["packageType"])
	code := spec["code"].(map[string]any)
	assert.Equal(t, testImageURI, code["imageURI"])

	roleRef := spec["roleRef"].(map[string]any)
	from := roleRef["from"].(map[string]any)
	assert.Equal(t, "claud-agent-claud-agent", from["name"])

	env := spec["environment"].(map[string]any)
	vars := env["variables"].(map[string]any)
	assert.Equal(t, "claud-input-claud-agent", vars["INPUT_BUCKET"])
	assert.Equal(t, "claud-output-queue-claud-agent", vars["OUTPUT_QUEUE_NAME"])
}

func TestManifests_EventSourceMapping(t *testing.T) {
	docs := renderManifests(t, nil)

	esm := manifestByKind(t, docs, "EventSourceMapping", "claud-agent-claud-agent-mapping")
	assert.Equal(t, "lambda.services.k8s.aws/v1alpha1", esm["apiVersion"])

	spec := esm["spec"].(map[string]any)
	assert.Equal(t, "arn:aws:sqs:*:*:claud-input-queue-claud-agent", spec["eventSourceARN"])
	assert.Equal(t, float64(1), spec["batchSize"])

	fnRef := spec["functionRef"].(map[string]any)
	from := fnRef["from"].(map[string]any)
	assert.Equal(t, "claud-agent-claud-agent", from["name"])
}

func TestManifests_PoliciesUseStaticARNs(t *testing.T) {
	docs := renderManifests(t, nil)

	policy := manifestByKind(t, docs, "Policy", "claud-consumer-claud-agent")
	spec := policy["spec"].(map[string]any)
	doc, ok := spec["policyDocument"].(string)
	require.True(t, ok)
	assert.Contains(t, doc, "arn:aws:s3:::claud-input-claud-agent/*")
	assert.Contains(t, doc, "arn:aws:sqs:*:*:claud-output-queue-claud-agent")
	assert.NotContains(t, doc, "${")

	role := manifestByKind(t, docs, "Role", "claud-agent-claud-agent")
	spec = role["spec"].(map[string]any)
	trust, ok := spec["assumeRolePolicyDocument"].(string)
	require.True(t, ok)
	assert.Contains(t, trust, "lambda.amazonaws.com")

	policies, ok := spec["policies"].([]any)
	require.True(t, ok)
	require.Len(t, policies, 1)
	inline := policies[0].(string)
	assert.Contains(t, inline, "arn:aws:sqs:*:*:claud-input-queue-claud-agent")
	assert.NotContains(t, inline, "${")
}
