package claudagent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_MarshalJSON(t *testing.T) {
	tmpl := Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              "claud agent stack",
		Resources: map[string]ResourceDef{
			"InputBucket": {
				Type: "AWS::S3::Bucket",
				Properties: map[string]any{
					"BucketName": "claud-input-demo",
				},
				DeletionPolicy: "Retain",
			},
		},
		Outputs: map[string]Output{
			"InputBucketName": {Value: "claud-input-demo"},
		},
	}

	data, err := json.Marshal(tmpl)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "2010-09-09", parsed["AWSTemplateFormatVersion"])

	resources := parsed["Resources"].(map[string]any)
	bucket := resources["InputBucket"].(map[string]any)
	assert.Equal(t, "AWS::S3::Bucket", bucket["Type"])
	assert.Equal(t, "Retain", bucket["DeletionPolicy"])
}

func TestSynthResult_MarshalJSON(t *testing.T) {
	result := SynthResult{
		Success:   true,
		Template:  Template{AWSTemplateFormatVersion: "2010-09-09"},
		Resources: []string{"InputBucket", "InputQueue"},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, true, parsed["success"])
	assert.Equal(t, []any{"InputBucket", "InputQueue"}, parsed["resources"])
	assert.NotContains(t, parsed, "errors")
}
