package target

import "builtinreg/internal/builtins"

func x86Builtins() []builtins.Descriptor {
	return []builtins.Descriptor{
		{Name: "__builtin_ia32_pause", Type: "v", Langs: builtins.AllGNULanguages},
		{Name: "__builtin_ia32_rdtsc", Type: "ULLi", Langs: builtins.AllLanguages},
		{Name: "__builtin_ia32_lfence", Type: "v", Attributes: "n", Langs: builtins.AllLanguages, Features: "sse2"},
		{Name: "__builtin_ia32_mfence", Type: "v", Attributes: "n", Langs: builtins.AllLanguages, Features: "sse2"},
		{Name: "__builtin_ia32_addps", Type: "V4fV4fV4f", Attributes: "nc", Langs: builtins.AllLanguages, Features: "sse"},
		{Name: "__builtin_ia32_crc32qi", Type: "UiUiUc", Attributes: "nc", Langs: builtins.AllLanguages, Features: "sse4.2"},
		{Name: "__builtin_ia32_crc32si", Type: "UiUiUi", Attributes: "nc", Langs: builtins.AllLanguages, Features: "sse4.2"},
		{Name: "__builtin_ia32_vfmaddps", Type: "V4fV4fV4fV4f", Attributes: "nc", Langs: builtins.AllLanguages, Features: "fma,sse"},
		{Name: "__builtin_ia32_rdrand32_step", Type: "UiUi*", Attributes: "n", Langs: builtins.AllLanguages, Features: "rdrnd"},
		{Name: "__builtin_ia32_xgetbv", Type: "ULLiUi", Attributes: "n", Langs: builtins.AllLanguages, Features: "xsave"},
	}
}

func x86MSBuiltins() []builtins.Descriptor {
	return []builtins.Descriptor{
		{Name: "_BitScanForward", Type: "UcULi*ULi", Attributes: "n", HeaderName: "intrin.h", Langs: builtins.AllMSLanguages},
		{Name: "_BitScanReverse", Type: "UcULi*ULi", Attributes: "n", HeaderName: "intrin.h", Langs: builtins.AllMSLanguages},
		{Name: "__cpuid", Type: "vi*i", Attributes: "n", HeaderName: "intrin.h", Langs: builtins.AllMSLanguages},
		{Name: "_mm_pause", Type: "v", Attributes: "n", HeaderName: "intrin.h", Langs: builtins.AllMSLanguages},
		{Name: "__rdtsc", Type: "ULLi", Attributes: "n", HeaderName: "intrin.h", Langs: builtins.AllMSLanguages},
	}
}

func aarch64Builtins() []builtins.Descriptor {
	return []builtins.Descriptor{
		{Name: "__builtin_arm_clrex", Type: "v", Langs: builtins.AllLanguages},
		{Name: "__builtin_arm_rbit", Type: "UiUi", Attributes: "nc", Langs: builtins.AllLanguages},
		{Name: "__builtin_arm_rbit64", Type: "WUiWUi", Attributes: "nc", Langs: builtins.AllLanguages},
		{Name: "__builtin_arm_dmb", Type: "vUi", Attributes: "nc", Langs: builtins.AllLanguages},
		{Name: "__builtin_arm_crc32b", Type: "UiUiUc", Attributes: "nc", Langs: builtins.AllLanguages, Features: "crc"},
		{Name: "__builtin_arm_crc32d", Type: "UiUiWUi", Attributes: "nc", Langs: builtins.AllLanguages, Features: "crc"},
		{Name: "__builtin_arm_rndr", Type: "iWUi*", Attributes: "n", Langs: builtins.AllLanguages, Features: "rand"},
		{Name: "__yield", Type: "v", Attributes: "n", HeaderName: "intrin.h", Langs: builtins.AllMSLanguages},
	}
}

func nvptxBuiltins() []builtins.Descriptor {
	return []builtins.Descriptor{
		{Name: "__nvvm_read_ptx_sreg_tid_x", Type: "i", Attributes: "nc", Langs: builtins.AllLanguages},
		{Name: "__nvvm_read_ptx_sreg_ntid_x", Type: "i", Attributes: "nc", Langs: builtins.AllLanguages},
		{Name: "__nvvm_read_ptx_sreg_ctaid_x", Type: "i", Attributes: "nc", Langs: builtins.AllLanguages},
		{Name: "__syncthreads", Type: "v", Langs: builtins.AllLanguages},
		{Name: "__nvvm_bar_sync", Type: "vi", Attributes: "n", Langs: builtins.AllLanguages},
		{Name: "__nvvm_fmax_f", Type: "fff", Langs: builtins.AllLanguages},
		{Name: "__nvvm_atom_add_gen_i", Type: "iiD*i", Attributes: "n", Langs: builtins.AllLanguages},
		{Name: "__nvvm_match_any_sync_i32", Type: "UiUii", Langs: builtins.AllLanguages, Features: "ptx60,sm_70"},
		{Name: "__nvvm_bar_warp_sync", Type: "vUi", Langs: builtins.AllLanguages, Features: "ptx60"},
	}
}

func amdgcnBuiltins() []builtins.Descriptor {
	return []builtins.Descriptor{
		{Name: "__builtin_amdgcn_workitem_id_x", Type: "Ui", Attributes: "nc", Langs: builtins.AllLanguages},
		{Name: "__builtin_amdgcn_workgroup_id_x", Type: "Ui", Attributes: "nc", Langs: builtins.AllLanguages},
		{Name: "__builtin_amdgcn_s_barrier", Type: "v", Attributes: "n", Langs: builtins.AllLanguages},
		{Name: "__builtin_amdgcn_dispatch_ptr", Type: "v*4", Attributes: "nc", Langs: builtins.AllLanguages},
		{Name: "__builtin_amdgcn_mov_dpp", Type: "iiIiIiIiIb", Attributes: "nc", Langs: builtins.AllLanguages, Features: "dpp"},
		{Name: "__builtin_amdgcn_s_memrealtime", Type: "LUi", Attributes: "n", Langs: builtins.AllLanguages, Features: "s-memrealtime"},
	}
}
